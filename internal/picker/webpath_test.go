// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package picker_test

import (
	"testing"

	"codeberg.org/oliverandrich/go-random-image/internal/picker"
	"github.com/stretchr/testify/assert"
)

func TestWebPath(t *testing.T) {
	tests := []struct {
		name     string
		absPath  string
		docRoot  string
		expected string
	}{
		{"unix", "/srv/www/images_pc/a.webp", "/srv/www", "/images_pc/a.webp"},
		{"root with trailing slash", "/srv/www/images_pc/a.webp", "/srv/www/", "/images_pc/a.webp"},
		{"nested base", "/srv/www/images/images_mobile/b.webp", "/srv/www", "/images/images_mobile/b.webp"},
		{"windows separators", `E:\project\pic_api\images_pc\a.webp`, `E:\project\pic_api`, "/images_pc/a.webp"},
		{"windows path with slash root", `E:\project\pic_api\images_pc\a.webp`, "E:/project/pic_api", "/images_pc/a.webp"},
		{"empty root keeps path", "/srv/www/a.webp", "", "/srv/www/a.webp"},
		{"slash root keeps path", "/srv/www/a.webp", "/", "/srv/www/a.webp"},
		{"outside root", "/data/images/a.webp", "/srv/www", "/data/images/a.webp"},
		{"sibling directory sharing a prefix", "/srv/public/images_pc/a.webp", "/srv/pub", "/srv/public/images_pc/a.webp"},
		{"root equals path", "/srv/www", "/srv/www", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := picker.WebPath(tt.absPath, tt.docRoot)

			assert.Equal(t, tt.expected, got)
			assert.NotContains(t, got, `\`)
		})
	}
}

func TestWebPath_NeverContainsRoot(t *testing.T) {
	root := "/srv/www"

	got := picker.WebPath("/srv/www/mirror/srv/www/a.webp", root)

	assert.NotContains(t, got, root)
}

func TestWebPath_RootOnlyRemovedAtBoundary(t *testing.T) {
	got := picker.WebPath("/srv/www/www2/srv/wwwx/a.webp", "/srv/www")

	assert.Equal(t, "/www2/srv/wwwx/a.webp", got)
}
