package utils

import "testing"

type sample struct {
	Title  string  `json:"title" validate:"required,notblank,max=5"`
	Rating int     `json:"rating" validate:"min=1,max=5"`
	Bio    *string `json:"bio" validate:"omitnil,max=3"`
}

func TestValidateStruct(t *testing.T) {
	long := "abcd"

	tests := []struct {
		name   string
		input  sample
		fields map[string]string
	}{
		{"valid", sample{Title: "ok", Rating: 3}, nil},
		{"blank title", sample{Title: "   ", Rating: 3}, map[string]string{"title": "This field may not be blank"}},
		{"rating high", sample{Title: "ok", Rating: 6}, map[string]string{"rating": "Must be at most 5"}},
		{"bio long", sample{Title: "ok", Rating: 1, Bio: &long}, map[string]string{"bio": "Maximum length is 3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateStruct(tt.input)
			if len(got) != len(tt.fields) {
				t.Fatalf("got %v, want %v", got, tt.fields)
			}
			for field, msg := range tt.fields {
				if got[field] != msg {
					t.Errorf("%s: got %q, want %q", field, got[field], msg)
				}
			}
		})
	}
}

func TestFormatValidationErrorsSorted(t *testing.T) {
	got := FormatValidationErrors(map[string]string{"b": "second", "a": "first"})
	if got != "a: first; b: second" {
		t.Errorf("got %q", got)
	}
}
