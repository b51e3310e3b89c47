package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/feedback-management-api/internal/models"
)

func TestToFeedbackDTO_Anonymity(t *testing.T) {
	fb := models.Feedback{
		ID:         1,
		EmployeeID: 10,
		ManagerID:  2,
		Sentiment:  models.SentimentNeutral,
		Employee:   models.User{ID: 10, Name: "Alice"},
		Manager:    models.User{ID: 2, Name: "Maya"},
	}

	visible := ToFeedbackDTO(fb)
	require.NotNil(t, visible.ManagerID)
	assert.EqualValues(t, 2, *visible.ManagerID)
	assert.Equal(t, "Maya", *visible.ManagerName)
	assert.Equal(t, "Alice", visible.EmployeeName)

	fb.IsAnonymous = true
	hidden := ToFeedbackDTO(fb)
	assert.Nil(t, hidden.ManagerID)
	assert.Nil(t, hidden.ManagerName)

	raw, err := json.Marshal(hidden)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Contains(t, decoded, "manager_id")
	assert.Nil(t, decoded["manager_id"])
	assert.Nil(t, decoded["manager_name"])
}

func TestToPeerFeedbackDTO_Anonymity(t *testing.T) {
	fb := models.PeerFeedback{
		ID:             1,
		FromEmployeeID: 10,
		ToEmployeeID:   11,
		FromEmployee:   models.User{ID: 10, Name: "Alice"},
		ToEmployee:     models.User{ID: 11, Name: "Bob"},
		IsAnonymous:    true,
	}

	out := ToPeerFeedbackDTO(fb)
	assert.Nil(t, out.FromEmployeeID)
	assert.Nil(t, out.FromEmployeeName)
	assert.Equal(t, "Bob", out.ToEmployeeName)

	fb.IsAnonymous = false
	out = ToPeerFeedbackDTO(fb)
	require.NotNil(t, out.FromEmployeeName)
	assert.Equal(t, "Alice", *out.FromEmployeeName)
}

func TestToAssignmentDTOs_Counts(t *testing.T) {
	items := []models.Assignment{{ID: 1}, {ID: 2}}
	out := ToAssignmentDTOs(items, map[uint64]int64{1: 3})

	require.Len(t, out, 2)
	assert.EqualValues(t, 3, out[0].SubmissionCount)
	assert.Zero(t, out[1].SubmissionCount)
}

func TestToUserDTO_OmitsPasswordHash(t *testing.T) {
	raw, err := json.Marshal(ToUserDTO(models.User{ID: 1, Name: "A", PasswordHash: "secret-hash"}))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret-hash")
}
