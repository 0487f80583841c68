package main

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestQueryFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
		check   func(t *testing.T, f *queryFlags, cmd *cobra.Command)
	}{
		{
			name: "defaults leave presets untouched",
			args: nil,
			check: func(t *testing.T, f *queryFlags, cmd *cobra.Command) {
				q, _ := f.query(cmd)
				if q.Presets != nil || q.Filters != nil || q.Sort != nil || *q.Page != 1 {
					t.Errorf("query = %+v", q)
				}
			},
		},
		{
			name: "presets and filters",
			args: []string{"--preset", "fehler", "--preset", "ups-usa", "--filter", "email=example", "--sort", "kaufdatum", "--desc"},
			check: func(t *testing.T, f *queryFlags, cmd *cobra.Command) {
				q, _ := f.query(cmd)
				if len(q.Presets) != 2 || q.Filters["email"] != "example" || *q.Sort != "kaufdatum" || !q.Desc {
					t.Errorf("query = %+v", q)
				}
			},
		},
		{name: "malformed filter", args: []string{"--filter", "email"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f queryFlags
			cmd := &cobra.Command{Use: "view"}
			f.register(cmd)
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatalf("ParseFlags() error = %v", err)
			}
			if _, err := f.query(cmd); (err != nil) != tt.wantErr {
				t.Fatalf("query() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, &f, cmd)
			}
		})
	}
}
