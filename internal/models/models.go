package models

import "time"

// Slot is a named daily delivery window.
type Slot string

const (
	SlotMorning Slot = "morning"
	SlotEvening Slot = "evening"
)

// PracticeMode defines which slots are active for a user.
type PracticeMode string

const (
	ModeNone        PracticeMode = "none"
	ModeMorningOnly PracticeMode = "morning_only"
	ModeDual        PracticeMode = "dual"
	// ModeExtended встречается в старых записях, по расписанию равен dual.
	ModeExtended PracticeMode = "extended"
)

// Includes reports whether the slot is applicable in this mode.
func (m PracticeMode) Includes(s Slot) bool {
	switch m {
	case ModeDual, ModeExtended:
		return true
	case ModeMorningOnly:
		return s == SlotMorning
	default:
		return false
	}
}

// AdvanceSlot is the single slot whose successful send moves the day cursor:
// evening for dual, morning for morning_only.
func (m PracticeMode) AdvanceSlot() Slot {
	if m == ModeMorningOnly {
		return SlotMorning
	}
	return SlotEvening
}

// ActiveTest tracks a test in progress. Non-nil iff the user is mid-test.
type ActiveTest struct {
	TestID      string `json:"id"`
	QuestionIdx int    `json:"current_question_idx"`
	Answers     []int  `json:"answers"`
	Forced      bool   `json:"is_forced_day14,omitempty"`
	OriginDay   int    `json:"test_for_day,omitempty"`
}

// PendingEmail bridges "test finished" and "email captured".
// The fields are set together and cleared together.
type PendingEmail struct {
	TestID  string `json:"test_id"`
	Score   int    `json:"score"`
	Answers []int  `json:"answers_indices"`
	Forced  bool   `json:"is_forced_day14"`
}

// TestTaken is the history entry for a completed test. Re-taking overwrites.
type TestTaken struct {
	Summary         string    `json:"summary"`
	Answers         []int     `json:"answers"`
	TakenAt         time.Time `json:"date_taken"`
	EmailRecipient  string    `json:"email_recipient,omitempty"`
	EmailStatus     string    `json:"email_sent_status,omitempty"`
	ConsultInterest bool      `json:"consult_interest_shown"`
}

// UserRecord is the per-user state. Records are created on first contact and
// never deleted; unsubscribing flips Subscribed off.
type UserRecord struct {
	ChatID          int64
	Username        string
	FirstName       string
	Subscribed      bool
	PracticeMode    PracticeMode
	CurrentDay      int    // 1-based cursor into the content cycle, 0 before subscription
	LastMorningSent string // "2006-01-02", empty = never
	LastEveningSent string
	Stage           Stage
	Email           string
	ActiveTest      *ActiveTest
	PendingEmail    *PendingEmail
	TestsTaken      map[string]TestTaken
	CreatedAt       time.Time
	LastInteraction time.Time
}

// LastSent returns the idempotence date for the slot.
func (u *UserRecord) LastSent(s Slot) string {
	if s == SlotMorning {
		return u.LastMorningSent
	}
	return u.LastEveningSent
}

// SetLastSent stamps the idempotence date for the slot.
func (u *UserRecord) SetLastSent(s Slot, date string) {
	if s == SlotMorning {
		u.LastMorningSent = date
	} else {
		u.LastEveningSent = date
	}
}

// AdvanceDay moves the day cursor forward, wrapping past totalDays to 1.
func (u *UserRecord) AdvanceDay(totalDays int) {
	u.CurrentDay++
	if u.CurrentDay > totalDays {
		u.CurrentDay = 1
	}
}

// ClearPendingEmail drops the email scratch fields as a unit.
func (u *UserRecord) ClearPendingEmail() {
	u.PendingEmail = nil
}
