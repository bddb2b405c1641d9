// Package errors provides structured errors for the rpg-story service.
//
// Errors carry a Code, a user-facing message, an optional cause and metadata:
//
//	err := errors.NotFound("story not found").
//	    WithMeta("story_id", storyID)
//
// Wrapping keeps the code of the wrapped error:
//
//	if err := repo.Get(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to load story")
//	}
//
// Handlers convert at the transport boundary with ToGRPCError, or use
// Code.HTTPStatus for the HTTP surface. Metadata crosses gRPC as a
// structpb.Struct status detail and is restored by FromGRPCError.
//
// Field validation uses the builder:
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRange("time_limit", qte.TimeLimit, 3, 6, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
package errors
