package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "checkpoint/pkg/domain"
	dErrors "checkpoint/pkg/domain-errors"
)

var now = time.Date(2025, 6, 9, 14, 0, 0, 0, time.UTC)

func TestNewAudit(t *testing.T) {
	t.Run("starts open with normalized people lists", func(t *testing.T) {
		a, err := NewAudit(id.NewAuditID(), "PS-20250609-001", " Charata ", []string{"Ana", " Ana", ""}, []string{"Luis"}, "u1", now)
		require.NoError(t, err)
		assert.Equal(t, AuditOpen, a.State)
		assert.Equal(t, "Charata", a.Location)
		assert.Equal(t, []string{"Ana"}, a.Auditors)
		assert.Nil(t, a.ClosedAt)
	})

	t.Run("rejects empty location", func(t *testing.T) {
		_, err := NewAudit(id.NewAuditID(), "PS-20250609-001", "  ", nil, nil, "", now)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})
}

func TestAuditClose(t *testing.T) {
	a, err := NewAudit(id.NewAuditID(), "PS-20250609-001", "Bandera", nil, nil, "", now)
	require.NoError(t, err)
	require.NoError(t, a.EnsureWritable())

	closedAt := now.Add(2 * time.Hour)
	require.NoError(t, a.Close(closedAt))
	assert.Equal(t, AuditClosed, a.State)
	require.NotNil(t, a.ClosedAt)
	assert.Equal(t, closedAt, *a.ClosedAt)

	t.Run("closing twice is rejected", func(t *testing.T) {
		err := a.Close(closedAt.Add(time.Hour))
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		assert.Equal(t, closedAt, *a.ClosedAt)
	})

	t.Run("closed audits reject result writes", func(t *testing.T) {
		assert.True(t, dErrors.HasCode(a.EnsureWritable(), dErrors.CodeInvariantViolation))
	})
}

func TestAuditNumber(t *testing.T) {
	assert.Equal(t, "PS-20250609-007", AuditNumber(now, 7))
	assert.Equal(t, "PS-20250609-1234", AuditNumber(now, 1234))
}

func TestKindFromName(t *testing.T) {
	tests := []struct {
		name, url string
		want      AttachmentKind
	}{
		{"foto.JPG", "https://files/x", AttachmentPhoto},
		{"evidence.webp", "", AttachmentPhoto},
		{"blob", "https://storage.example/o/blob?alt=media&token=1", AttachmentPhoto},
		{"informe.pdf", "https://files/informe.pdf", AttachmentDocument},
		{"", "::not a url", AttachmentDocument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindFromName(tt.name, tt.url))
		})
	}

	a := Attachment{Name: "x.png", URL: "u"}.Normalize()
	assert.Equal(t, AttachmentPhoto, a.Kind)
	kept := Attachment{Name: "x.png", URL: "u", Kind: AttachmentDocument}.Normalize()
	assert.Equal(t, AttachmentDocument, kept.Kind)
}

func TestActionPlan(t *testing.T) {
	in := ActionPlanInput{Responsible: "  Jefe de taller ", State: PlanCompleted}
	in.Normalize()
	require.NoError(t, in.Validate())

	plan := NewActionPlan(id.NewActionPlanID(), id.NewResultID(), in, now)
	assert.Equal(t, PlanPending, plan.State, "new plans always start pending")
	assert.Equal(t, "Jefe de taller", plan.Responsible)

	later := now.Add(24 * time.Hour)
	plan.Apply(ActionPlanInput{Responsible: "Otro", State: PlanInProgress}, later)
	assert.Equal(t, PlanInProgress, plan.State)
	assert.Equal(t, later, plan.UpdatedAt)
	assert.Equal(t, now, plan.CreatedAt)

	_, err := ParsePlanState("cancelado")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	st, err := ParsePlanState("")
	require.NoError(t, err)
	assert.Equal(t, PlanPending, st)
}

func TestCloseNonConformityComment(t *testing.T) {
	assert.Equal(t, "NC cerrada. Ver plan de acción asociado. - 09/06/2025", CloseNonConformityComment(now))
}
