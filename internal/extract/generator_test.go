package extract

import "testing"

func TestCleanModelJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "already clean object",
			raw:  `{"transactions": []}`,
			want: `{"transactions": []}`,
		},
		{
			name: "json code fence",
			raw:  "```json\n{\"transactions\": []}\n```",
			want: `{"transactions": []}`,
		},
		{
			name: "bare code fence",
			raw:  "```\n[{\"date\": \"2024-01-01\"}]\n```",
			want: `[{"date": "2024-01-01"}]`,
		},
		{
			name: "prose around object",
			raw:  "Here is the result:\n{\"account_number\": null}\nHope that helps!",
			want: `{"account_number": null}`,
		},
		{
			name: "prose around array",
			raw:  "Result: [1, 2, 3] done",
			want: `[1, 2, 3]`,
		},
		{
			name: "surrounding whitespace",
			raw:  "  \n {\"a\": 1} \n ",
			want: `{"a": 1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanModelJSON(tt.raw); got != tt.want {
				t.Errorf("cleanModelJSON() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSchemasDeclareRequiredFields(t *testing.T) {
	s := transactionsSchema()
	items := s.Properties["transactions"].Items

	required := map[string]bool{}
	for _, f := range items.Required {
		required[f] = true
	}
	for _, f := range []string{"date", "description", "amount", "evidence"} {
		if !required[f] {
			t.Errorf("transaction item schema missing required field %q", f)
		}
	}

	m := metadataSchema()
	if len(m.Required) != 0 {
		t.Errorf("metadata schema requires %v, want every field optional", m.Required)
	}
}
