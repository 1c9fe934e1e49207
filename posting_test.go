package jobscore

import "testing"

func TestPosting_Text(t *testing.T) {
	tests := []struct {
		name    string
		posting Posting
		want    string
	}{
		{
			name: "all fields in order",
			posting: Posting{
				Title:          "Data Entry Clerk",
				Company:        "Acme",
				Description:    "Type things",
				Requirements:   "None",
				Benefits:       "Cash",
				Location:       "Remote",
				Salary:         "5000-9000",
				EmploymentType: "Part-time",
				Industry:       "Staffing",
			},
			want: "Data Entry Clerk Acme Type things None Cash Remote 5000-9000 Part-time Staffing",
		},
		{
			name:    "empty fields keep separators",
			posting: Posting{Title: "Nurse", Location: "Leeds"},
			want:    "Nurse     Leeds",
		},
		{
			name:    "trailing fields trimmed",
			posting: Posting{Industry: "Retail"},
			want:    "Retail",
		},
		{
			name: "empty posting",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.posting.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}
