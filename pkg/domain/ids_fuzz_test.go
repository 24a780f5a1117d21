package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

// Session ids arrive from signed tokens and admin URL paths, so parsing must
// hold up against anything.
func FuzzParseSessionID(f *testing.F) {
	for _, seed := range []string{
		"",
		"9b2f6c1e-4a7d-4c1b-9e55-0d3f1a2b7c88",
		uuid.Nil.String(),
		"{9b2f6c1e-4a7d-4c1b-9e55-0d3f1a2b7c88}",
		"tg:decl:9b2f6c1e",
		"\xff\xfe",
	} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, raw string) {
		sid, err := ParseSessionID(raw)
		if err != nil {
			if !sid.IsNil() {
				t.Fatalf("error %v returned with non-nil id %s", err, sid)
			}
			return
		}
		if sid.IsNil() {
			t.Fatalf("accepted nil session id from %q", raw)
		}

		text, err := sid.MarshalText()
		if err != nil {
			t.Fatalf("marshal %s: %v", sid, err)
		}
		var back SessionID
		if err := back.UnmarshalText(text); err != nil || back != sid {
			t.Fatalf("text round-trip of %q: got %s, %v", raw, back, err)
		}
		if !strings.EqualFold(sid.String(), string(text)) {
			t.Fatalf("String %s differs from text %s", sid, text)
		}
	})
}
