package errors_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-story/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestValidationError() {
	ve := errors.NewValidationError()
	ve.AddFieldError("title", "is required")
	ve.AddFieldErrorf("time_limit", "must be between %d and %d", 3, 6)

	s.Assert().True(ve.HasErrors())
	s.Assert().Equal("validation failed: time_limit: must be between 3 and 6; title: is required", ve.Error())

	err := ve.ToError()
	s.Assert().Equal(errors.CodeInvalidArgument, err.Code)
	s.Assert().NotNil(err.Meta["validation_errors"])
}

func (s *ValidationTestSuite) TestValidationBuilderNoErrors() {
	vb := errors.NewValidationBuilder()
	s.Assert().False(vb.HasErrors())
	s.Assert().Nil(vb.Build())
}

func (s *ValidationTestSuite) TestValidateRequired() {
	testCases := []struct {
		name      string
		value     string
		shouldErr bool
	}{
		{"valid value", "intro", false},
		{"empty string", "", true},
		{"whitespace only", "   ", true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			vb := errors.NewValidationBuilder()
			errors.ValidateRequired("scene_id", tc.value, vb)
			if tc.shouldErr {
				s.Assert().Error(vb.Build())
			} else {
				s.Assert().NoError(vb.Build())
			}
		})
	}
}

func (s *ValidationTestSuite) TestValidateRangeCountEnum() {
	vb := errors.NewValidationBuilder()
	errors.ValidateRange("time_limit", 9, 3, 6, vb)
	errors.ValidateRange("ok_limit", 4, 3, 6, vb)
	errors.ValidateCount("dialogue_topics", 7, 0, 5, vb)
	errors.ValidateEnum("qte_type", "dance", []string{"action", "combo", "unlock"}, vb)

	err := vb.Build()
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))

	fields := errors.GetMeta(err)["validation_errors"].(map[string][]string)
	s.Assert().Contains(fields["time_limit"][0], "must be between 3 and 6")
	s.Assert().Contains(fields["dialogue_topics"][0], "got 7")
	s.Assert().Contains(fields["qte_type"][0], "action, combo, unlock")
	s.Assert().NotContains(fields, "ok_limit")
}
