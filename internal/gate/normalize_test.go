package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func inbound(body string) *InboundMessage {
	return &InboundMessage{Body: body}
}

func TestNormalize_RawReasonVocabulary(t *testing.T) {
	tests := []struct {
		raw  string
		want GateReason
	}{
		{"FEE_QUOTE", ReasonFeeQuote},
		{"fee dispute", ReasonFeeQuote},
		{"Payment pending", ReasonFeeQuote},
		{"DENIAL", ReasonDenial},
		{"request rejected", ReasonDenial},
		{"SCOPE", ReasonScope},
		{"needs clarification", ReasonScope},
		{"ID_REQUIRED", ReasonIDRequired},
		{"identity verification", ReasonIDRequired},
		{"SENSITIVE", ReasonSensitive},
		{"CLOSE_ACTION", ReasonCloseAction},
		{"all done", ReasonCloseAction},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(ptr(tt.raw), CaseSnapshot{}, nil))
		})
	}
}

func TestNormalize_RawReasonOrder(t *testing.T) {
	// fee vocabulary is checked before denial
	assert.Equal(t, ReasonFeeQuote, Normalize(ptr("fee denied"), CaseSnapshot{}, nil))
	// scope is checked before identity
	assert.Equal(t, ReasonScope, Normalize(ptr("verify scope"), CaseSnapshot{}, nil))
}

func TestNormalize_ExplicitSignalBeatsInbound(t *testing.T) {
	last := inbound("Your request has been denied and rejected.")
	assert.Equal(t, ReasonFeeQuote, Normalize(ptr("fee dispute"), CaseSnapshot{}, last))
}

func TestNormalize_ReviewIsNotSensitive(t *testing.T) {
	cls := Classify(ptr("REVIEW"), CaseSnapshot{}, nil)
	assert.Equal(t, ReasonUnknown, cls.Reason)
	assert.Equal(t, QualityFallback, cls.Quality)

	// falls through to later rules
	cls = Classify(ptr("REVIEW"), CaseSnapshot{}, inbound("The request is too broad."))
	assert.Equal(t, ReasonScope, cls.Reason)
	assert.Equal(t, SourceInbound, cls.Source)
}

func TestNormalize_UnspecifiedUsesSubstatus(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		substatus string
		want      GateReason
		source    Source
	}{
		{"unknown with fee substatus", "UNKNOWN", "awaiting fee payment", ReasonFeeQuote, SourceSubstatus},
		{"unspecified with denial substatus", "unspecified", "partial denial", ReasonDenial, SourceSubstatus},
		{"unknown with scope substatus", "unknown", "scope too broad", ReasonScope, SourceSubstatus},
		{"substatus only knows three reasons", "unknown", "identity verification", ReasonUnknown, SourceNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cls := Classify(ptr(tt.raw), CaseSnapshot{Substatus: tt.substatus}, nil)
			assert.Equal(t, tt.want, cls.Reason)
			assert.Equal(t, tt.source, cls.Source)
		})
	}
}

func TestNormalize_SubstatusIgnoredWithoutUnspecifiedMarker(t *testing.T) {
	cls := Classify(ptr("paused"), CaseSnapshot{Substatus: "fee pending"}, nil)
	assert.Equal(t, ReasonUnknown, cls.Reason)

	cls = Classify(nil, CaseSnapshot{Substatus: "fee pending"}, nil)
	assert.Equal(t, ReasonUnknown, cls.Reason)
}

func TestNormalize_StructuredFeeInference(t *testing.T) {
	tests := []struct {
		name string
		c    CaseSnapshot
		want GateReason
	}{
		{"cost amount", CaseSnapshot{CostAmount: ptr(25.0)}, ReasonFeeQuote},
		{"zero cost amount", CaseSnapshot{CostAmount: ptr(0.0)}, ReasonUnknown},
		{"deposit", CaseSnapshot{FeeQuote: &FeeQuote{DepositAmount: ptr(10.0)}}, ReasonFeeQuote},
		{"fee quote without deposit", CaseSnapshot{FeeQuote: &FeeQuote{}}, ReasonUnknown},
		{"cost status", CaseSnapshot{CostStatus: "QUOTED"}, ReasonFeeQuote},
		{"cost status none", CaseSnapshot{CostStatus: "none"}, ReasonUnknown},
		{"cost status NONE", CaseSnapshot{CostStatus: " NONE "}, ReasonUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(nil, tt.c, nil))
		})
	}
}

func TestNormalize_StructuredBeatsInbound(t *testing.T) {
	cls := Classify(nil, CaseSnapshot{CostAmount: ptr(150.0)}, inbound("Your request is denied."))
	assert.Equal(t, ReasonFeeQuote, cls.Reason)
	assert.Equal(t, SourceStructured, cls.Source)
}

func TestNormalize_InboundKeywords(t *testing.T) {
	tests := []struct {
		body string
		want GateReason
	}{
		{"Please remit $25 before we proceed.", ReasonFeeQuote},
		{"An invoice is attached.", ReasonFeeQuote},
		{"Your request has been denied.", ReasonDenial},
		{"We cannot fulfill this request.", ReasonDenial},
		{"We are unable to provide these records.", ReasonDenial},
		{"This request is overly broad.", ReasonScope},
		{"Please specify which incident.", ReasonScope},
		{"Please verify your identity.", ReasonIDRequired},
		{"Send proof of residency.", ReasonIDRequired},
		{"Thank you for your request.", ReasonUnknown},
		// fee group wins over denial group
		{"The fee waiver was denied.", ReasonFeeQuote},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(nil, CaseSnapshot{}, inbound(tt.body)))
		})
	}
}

func TestNormalize_Totality(t *testing.T) {
	empty := ""
	blank := "   "
	inputs := []struct {
		raw  *string
		c    CaseSnapshot
		last *InboundMessage
	}{
		{nil, CaseSnapshot{}, nil},
		{&empty, CaseSnapshot{}, nil},
		{&blank, CaseSnapshot{}, &InboundMessage{}},
		{nil, CaseSnapshot{FeeQuote: &FeeQuote{}}, inbound("")},
		{ptr("???"), CaseSnapshot{ScopeItems: []ScopeItem{{}}}, nil},
	}
	for _, in := range inputs {
		got := Normalize(in.raw, in.c, in.last)
		assert.True(t, got.IsValid())
		// deterministic
		assert.Equal(t, got, Normalize(in.raw, in.c, in.last))
	}
}
