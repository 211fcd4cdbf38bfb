package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFullyApproved(t *testing.T) {
	tests := []struct {
		name      string
		approvers []ApproverStatus
		want      bool
	}{
		{
			name:      "empty chain is never approved",
			approvers: nil,
			want:      false,
		},
		{
			name: "all approved",
			approvers: []ApproverStatus{
				{Email: "techlead@university.edu", Status: ApprovalStatusApproved},
				{Email: "hod@university.edu", Status: ApprovalStatusApproved},
			},
			want: true,
		},
		{
			name: "one pending",
			approvers: []ApproverStatus{
				{Email: "techlead@university.edu", Status: ApprovalStatusApproved},
				{Email: "hod@university.edu", Status: ApprovalStatusPending},
			},
			want: false,
		},
		{
			name: "one rejected",
			approvers: []ApproverStatus{
				{Email: "techlead@university.edu", Status: ApprovalStatusRejected},
				{Email: "hod@university.edu", Status: ApprovalStatusApproved},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Event{Approvers: tt.approvers}
			assert.Equal(t, tt.want, e.FullyApproved())
		})
	}
}

func TestApproverAppliesTo(t *testing.T) {
	a := &Approver{EventTypes: []string{"academic", "tech"}}

	assert.True(t, a.AppliesTo("tech"))
	assert.False(t, a.AppliesTo("sports"))
	assert.False(t, a.AppliesTo(""))
}
