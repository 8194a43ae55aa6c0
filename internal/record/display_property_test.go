package record

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestDisplayProperties uses property-based testing for the enum
// normalization and wire serialization invariants
func TestDisplayProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	// Property: every key and every label normalizes to the corresponding key
	properties.Property("keys and labels normalize to the key", prop.ForAll(
		func(key string, useLabel bool) bool {
			state := DisplayState(key)
			input := key
			if useLabel {
				input = state.Label()
			}

			normalized, err := NormalizeDisplay(input)
			return err == nil && normalized == state
		},
		gen.OneConstOf("configuring", "configured", "effective", "invalidated", "rejected"),
		gen.Bool(),
	))

	// Property: arbitrary strings fail unless they happen to be a key
	properties.Property("unknown values fail normalization", prop.ForAll(
		func(v string) bool {
			_, err := NormalizeDisplay(v)
			if err == nil {
				// generated alpha strings never collide with the labels, so
				// success means the string happened to be a key
				_, isKey := displayLabels[DisplayState(v)]
				return isKey
			}
			return true
		},
		gen.AlphaString(),
	))

	// Property: serializing to the wire and back reproduces the field set,
	// including the key form of display
	properties.Property("wire round trip preserves the field set", prop.ForAll(
		func(name, display, account, remark string, updateTime int64) bool {
			f, err := NewFieldSet(FieldSetParams{
				AppID:      "app_prop",
				Name:       name,
				Display:    display,
				Account:    account,
				UpdateTime: updateTime,
				Remark:     remark,
			})
			if err != nil {
				return false
			}

			rec, err := FromWireRecord(WireRecord{Fields: WireFields(f)})
			return err == nil && rec.Fields == f
		},
		gen.AlphaString().SuchThat(func(s string) bool { return s != "" }),
		gen.OneConstOf(
			"configuring", "正在创建",
			"configured", "创建完成",
			"effective", "生效",
			"invalidated", "失效",
			"rejected", "拒绝",
		),
		gen.AlphaString(),
		gen.AlphaString(),
		gen.Int64Range(1, 2_000_000_000_000),
	))

	properties.TestingRun(t)
}
