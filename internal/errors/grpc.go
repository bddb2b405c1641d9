package errors

import (
	"encoding/json"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// metaCodeKey is the detail field carrying our code through a gRPC status
const metaCodeKey = "_code"

// ToGRPCError converts an error to a gRPC status error.
// Metadata travels as a structpb.Struct detail.
func ToGRPCError(err error) error {
	if err == nil {
		return nil
	}

	// Check if it's already a gRPC status error
	if _, ok := status.FromError(err); ok {
		return err
	}

	var customErr *Error
	if !As(err, &customErr) {
		return status.Error(codes.Internal, err.Error())
	}

	st := status.New(customErr.Code.GRPCCode(), customErr.Message)
	if len(customErr.Meta) == 0 {
		return st.Err()
	}

	details, detailErr := metaToStruct(customErr.Code, customErr.Meta)
	if detailErr != nil {
		return st.Err()
	}
	if withDetails, detailErr := st.WithDetails(details); detailErr == nil {
		st = withDetails
	}

	return st.Err()
}

// FromGRPCError converts a gRPC error to our custom error
func FromGRPCError(err error) error {
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	customErr := &Error{
		Code:    codeFromGRPC(st.Code()),
		Message: st.Message(),
	}

	for _, detail := range st.Details() {
		if s, ok := detail.(*structpb.Struct); ok {
			meta := s.AsMap()
			if code, ok := meta[metaCodeKey].(string); ok {
				customErr.Code = Code(code)
				delete(meta, metaCodeKey)
			}
			customErr.Meta = meta
			break
		}
	}

	return customErr
}

// GRPCStatus returns the gRPC status for any error
func GRPCStatus(err error) *status.Status {
	if err == nil {
		return status.New(codes.OK, "")
	}
	return status.Convert(ToGRPCError(err))
}

// metaToStruct normalizes arbitrary metadata through JSON so nested slices and
// maps are representable as structpb values.
func metaToStruct(code Code, meta map[string]interface{}) (*structpb.Struct, error) {
	raw, err := json.Marshal(meta)
	if err != nil {
		return nil, err
	}

	normalized := make(map[string]interface{})
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return nil, err
	}
	normalized[metaCodeKey] = string(code)

	return structpb.NewStruct(normalized)
}
