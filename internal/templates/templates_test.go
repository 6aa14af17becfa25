package templates

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJoinBase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		base   string
		suffix string
		want   string
	}{
		{name: "root base", base: "/", suffix: "/characters", want: "/characters"},
		{name: "empty base", base: "", suffix: "characters", want: "/characters"},
		{name: "mounted base", base: "/catalog", suffix: "/characters", want: "/catalog/characters"},
		{name: "double slash collapsed", base: "/catalog/", suffix: "/fragments/characters", want: "/catalog/fragments/characters"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, JoinBase(tc.base, tc.suffix))
		})
	}
}

func TestAllTemplatesParse(t *testing.T) {
	t.Parallel()

	for _, name := range []string{
		"characters/index",
		"characters/list",
		"characters/detail",
		"characters/detail_body",
		"planets/index",
		"page_head",
		"page_foot",
		"error_banner",
	} {
		require.NotNil(t, set.Lookup(name), "template %q must be defined", name)
	}
}
