package dto

import (
	"errors"
	"testing"

	"task-marketplace.com/task-marketplace/internal/constants"
	apperrors "task-marketplace.com/task-marketplace/internal/errors"
)

func validAddress() *AddressInput {
	return &AddressInput{Label: "1 rue de Rivoli", Lat: 48.8556, Lng: 2.3601}
}

func TestCreateTaskRequest_ServiceVariant(t *testing.T) {
	req := CreateTaskRequest{
		Type:              constants.TaskTypeService,
		Title:             "Assemble a wardrobe",
		Description:       "IKEA PAX",
		Address:           validAddress(),
		CategoryID:        "cat-1",
		EstimatedDuration: 90,
		RelayPointID:      "ignored",
	}

	in, err := req.ToInput()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	details, ok := in.Details.(ServiceDetails)
	if !ok {
		t.Fatalf("expected ServiceDetails, got %T", in.Details)
	}
	if details.CategoryID != "cat-1" || details.EstimatedDuration != 90 {
		t.Errorf("unexpected details: %+v", details)
	}
	if err := in.Validate(); err != nil {
		t.Errorf("expected valid input, got %v", err)
	}
}

func TestCreateTaskRequest_ShippingVariant(t *testing.T) {
	req := CreateTaskRequest{
		Type:            constants.TaskTypeShipping,
		Title:           "Send a parcel",
		Description:     "Books",
		Address:         validAddress(),
		PackageCategory: constants.PackageSmall,
		PickupAddress:   validAddress(),
		RelayPointID:    "relay-1",
		PackageDetails:  []byte(`{"weight_kg": 2}`),
	}

	in, err := req.ToInput()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Details.TaskType() != constants.TaskTypeShipping {
		t.Fatalf("expected shipping variant, got %s", in.Details.TaskType())
	}
	if err := in.Validate(); err != nil {
		t.Errorf("expected valid input, got %v", err)
	}
}

func TestCreateTaskRequest_UnknownType(t *testing.T) {
	for _, typ := range []constants.TaskType{"", "DELIVERY"} {
		_, err := CreateTaskRequest{Type: typ}.ToInput()
		if !errors.Is(err, apperrors.ErrValidation) {
			t.Errorf("type %q: expected validation error, got %v", typ, err)
		}
	}
}

func TestCreateTaskInput_MissingRequiredFields(t *testing.T) {
	base := func() CreateTaskInput {
		return CreateTaskInput{
			Title:       "t",
			Description: "d",
			Address:     validAddress(),
			Details:     ServiceDetails{CategoryID: "c", EstimatedDuration: 60},
		}
	}

	cases := []struct {
		name   string
		mutate func(*CreateTaskInput)
	}{
		{"no details", func(in *CreateTaskInput) { in.Details = nil }},
		{"no title", func(in *CreateTaskInput) { in.Title = "  " }},
		{"no description", func(in *CreateTaskInput) { in.Description = "" }},
		{"no address", func(in *CreateTaskInput) { in.Address = nil }},
		{"bad address", func(in *CreateTaskInput) { in.Address = &AddressInput{Label: "x", Lat: 120} }},
		{"no category", func(in *CreateTaskInput) { in.Details = ServiceDetails{EstimatedDuration: 60} }},
		{"no duration", func(in *CreateTaskInput) { in.Details = ServiceDetails{CategoryID: "c"} }},
		{"no pickup", func(in *CreateTaskInput) { in.Details = ShippingDetails{PackageCategory: constants.PackageSmall, RelayPointID: "r"} }},
		{"no relay point", func(in *CreateTaskInput) { in.Details = ShippingDetails{PackageCategory: constants.PackageSmall, PickupAddress: validAddress()} }},
		{"bad package size", func(in *CreateTaskInput) { in.Details = ShippingDetails{PackageCategory: "HUGE", PickupAddress: validAddress(), RelayPointID: "r"} }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := base()
			tc.mutate(&in)
			if err := in.Validate(); !errors.Is(err, apperrors.ErrValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}
