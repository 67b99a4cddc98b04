package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestEntryPayload(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		content  string
		mood     *int
		expected []string
	}{
		{
			name:    "valid payload without mood",
			title:   "Morning pages",
			content: "Slept well, feeling fine.",
		},
		{
			name:    "valid payload with mood",
			title:   "Morning pages",
			content: "Slept well.",
			mood:    intPtr(7),
		},
		{
			name:     "blank title",
			title:    "   ",
			content:  "something",
			expected: []string{"title must not be blank"},
		},
		{
			name:     "mood below range",
			title:    "t",
			content:  "c",
			mood:     intPtr(0),
			expected: []string{"mood rating must be between 1 and 10"},
		},
		{
			name:     "mood above range",
			title:    "t",
			content:  "c",
			mood:     intPtr(11),
			expected: []string{"mood rating must be between 1 and 10"},
		},
		{
			name:    "all violations reported together",
			title:   "",
			content: "",
			mood:    intPtr(42),
			expected: []string{
				"title must not be blank",
				"content must not be blank",
				"mood rating must be between 1 and 10",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EntryPayload(tt.title, tt.content, tt.mood)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestUserPayload(t *testing.T) {
	t.Run("valid registration", func(t *testing.T) {
		assert.Empty(t, UserPayload("alice_1", "a@b.com", "password123"))
	})

	t.Run("username too short", func(t *testing.T) {
		errs := UserPayload("ab", "a@b.com", "password123")
		assert.Equal(t, []string{"username must be 3-20 characters of letters, digits or underscores"}, errs)
	})

	t.Run("username with illegal characters", func(t *testing.T) {
		errs := UserPayload("alice!", "a@b.com", "password123")
		assert.Len(t, errs, 1)
	})

	t.Run("email missing dot", func(t *testing.T) {
		errs := UserPayload("alice_1", "a@bcom", "password123")
		assert.Equal(t, []string{"email must be a valid address"}, errs)
	})

	t.Run("short password", func(t *testing.T) {
		errs := UserPayload("alice_1", "a@b.com", "short")
		assert.Equal(t, []string{"password must be at least 8 characters long"}, errs)
	})

	t.Run("everything wrong", func(t *testing.T) {
		errs := UserPayload("", "", "")
		assert.Equal(t, []string{
			"username must not be blank",
			"email must not be blank",
			"password must not be blank",
		}, errs)
	})
}

func TestErrorMessage(t *testing.T) {
	err := &Error{Messages: []string{"a", "b"}}
	assert.Equal(t, "validation failed: a; b", err.Error())
}
