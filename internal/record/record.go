package record

import (
	"fmt"
	"time"
)

// DisplayState is the stable internal identifier for the display field.
// The Bitable wire format always carries the human-readable label instead;
// business logic compares states, never labels.
type DisplayState string

const (
	DisplayConfiguring DisplayState = "configuring"
	DisplayConfigured  DisplayState = "configured"
	DisplayEffective   DisplayState = "effective"
	DisplayInvalidated DisplayState = "invalidated"
	DisplayRejected    DisplayState = "rejected"
)

// displayStates fixes the enum order for error messages and label listings
var displayStates = []DisplayState{
	DisplayConfiguring,
	DisplayConfigured,
	DisplayEffective,
	DisplayInvalidated,
	DisplayRejected,
}

var displayLabels = map[DisplayState]string{
	DisplayConfiguring: "正在创建",
	DisplayConfigured:  "创建完成",
	DisplayEffective:   "生效",
	DisplayInvalidated: "失效",
	DisplayRejected:    "拒绝",
}

// Label returns the human-readable form used on the wire
func (s DisplayState) Label() string {
	return displayLabels[s]
}

// DisplayLabels returns all valid labels in enum order
func DisplayLabels() []string {
	labels := make([]string, 0, len(displayStates))
	for _, state := range displayStates {
		labels = append(labels, displayLabels[state])
	}
	return labels
}

// NormalizeDisplay maps a display value to its internal state. It accepts
// either the internal key or the human label, matched exactly and
// case-sensitively. Anything else fails with a ValidationError listing the
// valid labels.
func NormalizeDisplay(value string) (DisplayState, error) {
	for _, state := range displayStates {
		if value == string(state) || value == displayLabels[state] {
			return state, nil
		}
	}
	return "", &ValidationError{
		Field:  "display",
		Reason: fmt.Sprintf("'%s' must be one of %v", value, DisplayLabels()),
	}
}

// FieldSet holds one row's business fields. Construct it with NewFieldSet;
// once validated it is treated as immutable.
type FieldSet struct {
	AppID      string
	Name       string
	Display    DisplayState
	Account    string
	UpdateTime int64 // epoch milliseconds
	Remark     string
}

// FieldSetParams carries the caller-supplied values for NewFieldSet.
// Display accepts an internal key or a human label. A zero UpdateTime means
// "now"; it is computed per construction, never shared between instances.
type FieldSetParams struct {
	AppID      string
	Name       string
	Display    string
	Account    string
	UpdateTime int64
	Remark     string
}

// NewFieldSet validates the parameters and returns an immutable FieldSet
func NewFieldSet(p FieldSetParams) (FieldSet, error) {
	if p.AppID == "" {
		return FieldSet{}, &ValidationError{Field: "app_id", Reason: "must not be empty"}
	}
	if p.Name == "" {
		return FieldSet{}, &ValidationError{Field: "name", Reason: "must not be empty"}
	}

	display, err := NormalizeDisplay(p.Display)
	if err != nil {
		return FieldSet{}, err
	}

	updateTime := p.UpdateTime
	if updateTime == 0 {
		updateTime = time.Now().UnixMilli()
	}

	return FieldSet{
		AppID:      p.AppID,
		Name:       p.Name,
		Display:    display,
		Account:    p.Account,
		UpdateTime: updateTime,
		Remark:     p.Remark,
	}, nil
}

// Record is a FieldSet plus the identifiers the server assigns. RecordID is
// only ever populated from a create or query response; update and delete
// require it.
type Record struct {
	Fields   FieldSet
	ID       string
	RecordID string
}
