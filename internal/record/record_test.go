package record

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDisplay(t *testing.T) {
	testCases := []struct {
		name     string
		value    string
		expected DisplayState
	}{
		{"ConfiguringKey", "configuring", DisplayConfiguring},
		{"ConfiguringLabel", "正在创建", DisplayConfiguring},
		{"ConfiguredKey", "configured", DisplayConfigured},
		{"ConfiguredLabel", "创建完成", DisplayConfigured},
		{"EffectiveKey", "effective", DisplayEffective},
		{"EffectiveLabel", "生效", DisplayEffective},
		{"InvalidatedKey", "invalidated", DisplayInvalidated},
		{"InvalidatedLabel", "失效", DisplayInvalidated},
		{"RejectedKey", "rejected", DisplayRejected},
		{"RejectedLabel", "拒绝", DisplayRejected},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			state, err := NormalizeDisplay(tc.value)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, state)
		})
	}

	t.Run("UnknownValue", func(t *testing.T) {
		_, err := NormalizeDisplay("deleted")

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "display", verr.Field)

		// The diagnostic must list every valid label
		for _, label := range DisplayLabels() {
			assert.Contains(t, err.Error(), label)
		}
	})

	t.Run("MatchIsCaseSensitive", func(t *testing.T) {
		_, err := NormalizeDisplay("Effective")
		assert.Error(t, err)
	})

	t.Run("EmptyValue", func(t *testing.T) {
		_, err := NormalizeDisplay("")
		assert.Error(t, err)
	})
}

func TestNewFieldSet(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		f, err := NewFieldSet(FieldSetParams{
			AppID:      "app_001",
			Name:       "my app",
			Display:    "configuring",
			Account:    "ops@example.com",
			UpdateTime: 1700000000000,
			Remark:     "first deploy",
		})

		require.NoError(t, err)
		assert.Equal(t, "app_001", f.AppID)
		assert.Equal(t, DisplayConfiguring, f.Display)
		assert.Equal(t, int64(1700000000000), f.UpdateTime)
	})

	t.Run("DisplayLabelNormalizedToKey", func(t *testing.T) {
		f, err := NewFieldSet(FieldSetParams{AppID: "app_001", Name: "my app", Display: "生效"})

		require.NoError(t, err)
		assert.Equal(t, DisplayEffective, f.Display)
	})

	t.Run("UpdateTimeDefaultsToNow", func(t *testing.T) {
		before := time.Now().UnixMilli()
		f, err := NewFieldSet(FieldSetParams{AppID: "app_001", Name: "my app", Display: "effective"})
		after := time.Now().UnixMilli()

		require.NoError(t, err)
		assert.GreaterOrEqual(t, f.UpdateTime, before)
		assert.LessOrEqual(t, f.UpdateTime, after)
	})

	t.Run("MissingAppID", func(t *testing.T) {
		_, err := NewFieldSet(FieldSetParams{Name: "my app", Display: "effective"})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "app_id", verr.Field)
	})

	t.Run("MissingName", func(t *testing.T) {
		_, err := NewFieldSet(FieldSetParams{AppID: "app_001", Display: "effective"})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "name", verr.Field)
	})

	t.Run("BadDisplay", func(t *testing.T) {
		_, err := NewFieldSet(FieldSetParams{AppID: "app_001", Name: "my app", Display: "gone"})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "display", verr.Field)
	})
}

func TestWireFields(t *testing.T) {
	t.Run("DisplayRenderedAsLabel", func(t *testing.T) {
		f, err := NewFieldSet(FieldSetParams{AppID: "app_001", Name: "my app", Display: "invalidated"})
		require.NoError(t, err)

		fields := WireFields(f)

		assert.Equal(t, "失效", fields["display"])
		assert.Equal(t, "app_001", fields["app_id"])
		assert.Equal(t, f.UpdateTime, fields["update_time"])
	})

	t.Run("EmptyOptionalsOmitted", func(t *testing.T) {
		f, err := NewFieldSet(FieldSetParams{AppID: "app_001", Name: "my app", Display: "effective"})
		require.NoError(t, err)

		fields := WireFields(f)

		assert.NotContains(t, fields, "account")
		assert.NotContains(t, fields, "remark")
	})

	t.Run("OptionalsIncludedWhenSet", func(t *testing.T) {
		f, err := NewFieldSet(FieldSetParams{
			AppID: "app_001", Name: "my app", Display: "effective",
			Account: "ops@example.com", Remark: "note",
		})
		require.NoError(t, err)

		fields := WireFields(f)

		assert.Equal(t, "ops@example.com", fields["account"])
		assert.Equal(t, "note", fields["remark"])
	})
}

func TestFromWireRecord(t *testing.T) {
	t.Run("ServerRecord", func(t *testing.T) {
		rec, err := FromWireRecord(WireRecord{
			Fields: map[string]interface{}{
				"app_id": "app_001",
				"name":   "my app",
				"display": "创建完成",
				// encoding/json decodes numbers into float64
				"update_time": float64(1700000000000),
				"account":     "ops@example.com",
			},
			ID:       "id_1",
			RecordID: "rec_1",
		})

		require.NoError(t, err)
		assert.Equal(t, DisplayConfigured, rec.Fields.Display)
		assert.Equal(t, int64(1700000000000), rec.Fields.UpdateTime)
		assert.Equal(t, "id_1", rec.ID)
		assert.Equal(t, "rec_1", rec.RecordID)
		assert.Equal(t, "ops@example.com", rec.Fields.Account)
		assert.Empty(t, rec.Fields.Remark)
	})

	t.Run("BadDisplayLabel", func(t *testing.T) {
		_, err := FromWireRecord(WireRecord{
			Fields: map[string]interface{}{
				"app_id":      "app_001",
				"name":        "my app",
				"display":     "已删除",
				"update_time": float64(1700000000000),
			},
		})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		f, err := NewFieldSet(FieldSetParams{
			AppID: "app_001", Name: "my app", Display: "rejected",
			Account: "ops@example.com", UpdateTime: 1700000000000, Remark: "note",
		})
		require.NoError(t, err)

		rec, err := FromWireRecord(WireRecord{Fields: WireFields(f)})

		require.NoError(t, err)
		assert.Equal(t, f, rec.Fields)
	})
}
