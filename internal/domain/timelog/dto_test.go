package timelog

import (
	"errors"
	"strings"
	"testing"

	"github.com/aleenavigoda/yardso-sub000/internal/pkg/validator"
)

func validLogTimeRequest() LogTimeRequest {
	return LogTimeRequest{
		Contact:     "sam@example.com",
		Hours:       2,
		Mode:        ModeHelped,
		Description: "Reviewed pitch deck",
	}
}

func TestLogTimeRequestValidate(t *testing.T) {
	valid := validLogTimeRequest()
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() on valid request = %v, want nil", err)
	}

	cases := []struct {
		name      string
		mutate    func(*LogTimeRequest)
		wantField string
	}{
		{"missing contact", func(r *LogTimeRequest) { r.Contact = " " }, "contact"},
		{"zero hours", func(r *LogTimeRequest) { r.Hours = 0 }, "hours"},
		{"negative hours", func(r *LogTimeRequest) { r.Hours = -1 }, "hours"},
		{"too many hours", func(r *LogTimeRequest) { r.Hours = 25 }, "hours"},
		{"unknown mode", func(r *LogTimeRequest) { r.Mode = "assisted" }, "mode"},
		{"missing description", func(r *LogTimeRequest) { r.Description = "" }, "description"},
		{"long description", func(r *LogTimeRequest) { r.Description = strings.Repeat("x", 501) }, "description"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := validLogTimeRequest()
			c.mutate(&req)

			err := req.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			var errs validator.ValidationErrors
			if !errors.As(err, &errs) {
				t.Fatalf("Validate() returned %T, want ValidationErrors", err)
			}
			if _, ok := errs.ToMap()[c.wantField]; !ok {
				t.Errorf("Validate() errors %v missing field %q", errs.ToMap(), c.wantField)
			}
		})
	}
}

func TestLogAgentTimeRequestValidate(t *testing.T) {
	valid := LogAgentTimeRequest{
		AgentID:        "ad9f7c72-5e2b-40bd-93f7-5159f6a0f9d3",
		Hours:          1.5,
		Description:    "Drafted outreach emails",
		ProfileIsGiver: false,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() on valid request = %v, want nil", err)
	}

	bad := valid
	bad.AgentID = "not-a-uuid"
	err := bad.Validate()
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		t.Fatalf("Validate() returned %T, want ValidationErrors", err)
	}
	if _, ok := errs.ToMap()["agent_id"]; !ok {
		t.Errorf("Validate() errors %v missing field %q", errs.ToMap(), "agent_id")
	}
}

func TestDisputeRequestValidate(t *testing.T) {
	valid := DisputeRequest{Reason: "The session never happened"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() on valid request = %v, want nil", err)
	}

	empty := DisputeRequest{}
	if err := empty.Validate(); err == nil {
		t.Error("Validate() with empty reason = nil, want error")
	}
}
