package v1alpha1

import (
	"encoding/json"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-story/internal/errors"
)

// decodeRequest reads a structpb payload into a typed request
func decodeRequest(req *structpb.Struct, into interface{}) error {
	if req == nil {
		return errors.InvalidArgument("request is required")
	}
	data, err := protojson.Marshal(req)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to read request")
	}
	if err := json.Unmarshal(data, into); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed request")
	}
	return nil
}

// encodeResponse renders a typed response as a structpb payload
func encodeResponse(v interface{}) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode response")
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, errors.Wrap(err, "failed to encode response")
	}
	return out, nil
}
