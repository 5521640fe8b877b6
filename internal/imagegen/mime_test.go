package imagegen

import "testing"

func TestMIMESourceDetect(t *testing.T) {
	tests := []struct {
		name   string
		source MIMESource
		img    SourceImage
		want   string
	}{
		{
			name:   "extension png",
			source: MIMEFromExtension,
			img:    SourceImage{OriginalName: "photo.PNG", MIME: "image/webp"},
			want:   "image/png",
		},
		{
			name:   "extension defaults to jpeg",
			source: MIMEFromExtension,
			img:    SourceImage{OriginalName: "photo.webp", MIME: "image/webp"},
			want:   "image/jpeg",
		},
		{
			name:   "extension falls back to path",
			source: MIMEFromExtension,
			img:    SourceImage{Path: "/tmp/abc.png"},
			want:   "image/png",
		},
		{
			name:   "declared wins when present",
			source: MIMEFromUpload,
			img:    SourceImage{OriginalName: "photo.jpg", MIME: "image/png"},
			want:   "image/png",
		},
		{
			name:   "declared falls back to extension",
			source: MIMEFromUpload,
			img:    SourceImage{OriginalName: "photo.jpg", MIME: " "},
			want:   "image/jpeg",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.source.Detect(tc.img); got != tc.want {
				t.Fatalf("Detect = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParseMIMESource(t *testing.T) {
	if got, err := ParseMIMESource(""); err != nil || got != MIMEFromExtension {
		t.Fatalf("empty should default to extension, got %q err %v", got, err)
	}
	if got, err := ParseMIMESource(" Declared "); err != nil || got != MIMEFromUpload {
		t.Fatalf("declared parse failed, got %q err %v", got, err)
	}
	if _, err := ParseMIMESource("magic"); err == nil {
		t.Fatalf("expected error for unknown mime source")
	}
}
