package filter

import (
	"errors"
	"reflect"
	"testing"

	"github.com/leaksplit/leaksplit/internal/model"
)

func testFindings() []model.Finding {
	return []model.Finding{
		{Secret: "a", RuleID: "aws-access-token", Fingerprint: "f1", File: "config/prod.env"},
		{Secret: "b", RuleID: "slack-webhook-url", Fingerprint: "f2", File: "vendor/lib/x.go"},
		{Secret: "c", RuleID: "generic-api-key", Fingerprint: "f3", File: "src/app/main.go"},
		{Secret: "d", RuleID: "aws-secret-key", Fingerprint: "f4", File: "src/app/.env"},
	}
}

func kept(findings []model.Finding) []string {
	out := make([]string, 0, len(findings))
	for _, f := range findings {
		out = append(out, f.Fingerprint)
	}
	return out
}

func TestFilterApply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{
			name:   "empty filter keeps everything",
			filter: Filter{},
			want:   []string{"f1", "f2", "f3", "f4"},
		},
		{
			name:   "exclude vendor tree",
			filter: Filter{ExcludePaths: []string{"vendor/**"}},
			want:   []string{"f1", "f3", "f4"},
		},
		{
			name:   "include env files anywhere",
			filter: Filter{IncludePaths: []string{"**/*.env", "**/.env"}},
			want:   []string{"f1", "f4"},
		},
		{
			name:   "include aws rules",
			filter: Filter{IncludeRules: []string{"aws-*"}},
			want:   []string{"f1", "f4"},
		},
		{
			name:   "exclude generic rules",
			filter: Filter{ExcludeRules: []string{"generic-*"}},
			want:   []string{"f1", "f2", "f4"},
		},
		{
			name: "include and exclude combined",
			filter: Filter{
				IncludePaths: []string{"src/**"},
				ExcludeRules: []string{"aws-*"},
			},
			want: []string{"f3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := kept(tt.filter.Apply(testFindings()))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Apply() kept %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterValidate(t *testing.T) {
	t.Parallel()

	if err := (Filter{IncludePaths: []string{"**/*.go"}, ExcludeRules: []string{"aws-*"}}).Validate(); err != nil {
		t.Errorf("unexpected error for valid patterns: %v", err)
	}

	err := Filter{ExcludePaths: []string{"src/[a-"}}.Validate()
	if !errors.Is(err, ErrBadPattern) {
		t.Errorf("expected ErrBadPattern, got %v", err)
	}
}

func TestFilterIsEmpty(t *testing.T) {
	t.Parallel()

	if !(Filter{}).IsEmpty() {
		t.Error("expected zero filter to be empty")
	}
	if (Filter{ExcludeRules: []string{"x"}}).IsEmpty() {
		t.Error("expected filter with a rule pattern to be non-empty")
	}
}
