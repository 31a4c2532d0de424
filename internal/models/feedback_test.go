package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeedbackStatusValid(t *testing.T) {
	assert.True(t, StatusIncomplete.Valid())
	assert.True(t, StatusComplete.Valid())
	assert.False(t, FeedbackStatus("Pending").Valid())
	assert.False(t, FeedbackStatus("").Valid())
}

func TestFeedbackEditable(t *testing.T) {
	assert.True(t, Feedback{Status: StatusIncomplete}.Editable())
	assert.False(t, Feedback{Status: StatusComplete}.Editable())
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleUser.Valid())
	assert.False(t, Role("superuser").Valid())
}
