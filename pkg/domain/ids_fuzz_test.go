//go:build go1.18

package domain

import "testing"

// FuzzParseAuditID checks that parsing never panics and that any accepted
// id round-trips through its string form.
func FuzzParseAuditID(f *testing.F) {
	f.Add("")
	f.Add("550e8400-e29b-41d4-a716-446655440000")
	f.Add("00000000-0000-0000-0000-000000000000")
	f.Add("not-a-uuid")
	f.Add(string([]byte{0x00, 0x01, 0x02}))

	f.Fuzz(func(t *testing.T, input string) {
		id, err := ParseAuditID(input)
		if err != nil {
			return
		}
		if id.IsNil() {
			t.Error("accepted nil audit id")
		}
		again, err := ParseAuditID(id.String())
		if err != nil {
			t.Errorf("valid id failed round-trip: %v", err)
		}
		if again != id {
			t.Error("round-trip changed id value")
		}
	})
}
