package models

import (
	"fmt"
	"strconv"
	"strings"
)

// StageKind enumerates the conversation states. Stage carries the kind plus
// its associated data; the legacy free-form string tag exists only at the
// persistence boundary (String / ParseStage).
type StageKind int

const (
	StageNone StageKind = iota
	StageGreeted
	StageSubscribed
	StageUnsubscribed
	StageBotBlocked
	StageTestOffered       // TestID
	StageForcedTestOffered // TestID, day-14 offer
	StageTestDeclined      // TestID
	StageInTest            // TestID
	StageAwaitingEmail     // TestID
	StagePostEmailOffer    // TestID
	StageConsultRequested  // TestID
	StageConsultDeclined   // TestID
	StageConsultThinking   // TestID
	StageEmailDataError
	StagePracticeAck // Day, Slot
	StageAdminSetDay // Day
)

// Stage is the user's position in the conversation state machine.
type Stage struct {
	Kind   StageKind
	TestID string
	Day    int
	Slot   Slot
}

const (
	tagGreeted           = "greeted"
	tagSubscribed        = "daily_subscribed"
	tagUnsubscribed      = "unsubscribed_daily"
	tagBotBlocked        = "bot_blocked"
	tagEmailDataError    = "test_email_data_error"
	prefTestOffered      = "daily_test_offered_"
	prefForcedOffered    = "day14_forced_test_offered_"
	prefTestDeclined     = "daily_test_declined_"
	prefInTest           = "in_test_"
	prefAwaitingEmail    = "awaiting_email_input_for_"
	prefPostEmailOffer   = "post_test_offer_email_sent_"
	prefConsultRequested = "consult_5000_requested_"
	prefConsultDeclined  = "consult_declined_after_email_"
	prefConsultThinking  = "consult_thinking_day14_"
	prefPracticeAck      = "daily_practice_day"
	prefAdminSetDay      = "admin_set_day_"
)

// String serializes the stage to its legacy tag form.
func (s Stage) String() string {
	switch s.Kind {
	case StageGreeted:
		return tagGreeted
	case StageSubscribed:
		return tagSubscribed
	case StageUnsubscribed:
		return tagUnsubscribed
	case StageBotBlocked:
		return tagBotBlocked
	case StageEmailDataError:
		return tagEmailDataError
	case StageTestOffered:
		return prefTestOffered + s.TestID
	case StageForcedTestOffered:
		return prefForcedOffered + s.TestID
	case StageTestDeclined:
		return prefTestDeclined + s.TestID
	case StageInTest:
		return prefInTest + s.TestID
	case StageAwaitingEmail:
		return prefAwaitingEmail + s.TestID
	case StagePostEmailOffer:
		return prefPostEmailOffer + s.TestID
	case StageConsultRequested:
		return prefConsultRequested + s.TestID
	case StageConsultDeclined:
		return prefConsultDeclined + s.TestID
	case StageConsultThinking:
		return prefConsultThinking + s.TestID
	case StagePracticeAck:
		return fmt.Sprintf("%s%d_%s_ack", prefPracticeAck, s.Day, s.Slot)
	case StageAdminSetDay:
		return prefAdminSetDay + strconv.Itoa(s.Day)
	default:
		return ""
	}
}

// ParseStage restores a Stage from its legacy tag. Unknown tags map to
// StageNone rather than failing: old records must stay loadable.
func ParseStage(raw string) Stage {
	switch raw {
	case tagGreeted:
		return Stage{Kind: StageGreeted}
	case tagSubscribed:
		return Stage{Kind: StageSubscribed}
	case tagUnsubscribed:
		return Stage{Kind: StageUnsubscribed}
	case tagBotBlocked:
		return Stage{Kind: StageBotBlocked}
	case tagEmailDataError:
		return Stage{Kind: StageEmailDataError}
	}
	for _, p := range []struct {
		prefix string
		kind   StageKind
	}{
		{prefForcedOffered, StageForcedTestOffered},
		{prefTestOffered, StageTestOffered},
		{prefTestDeclined, StageTestDeclined},
		{prefInTest, StageInTest},
		{prefAwaitingEmail, StageAwaitingEmail},
		{prefPostEmailOffer, StagePostEmailOffer},
		{prefConsultRequested, StageConsultRequested},
		{prefConsultDeclined, StageConsultDeclined},
		{prefConsultThinking, StageConsultThinking},
	} {
		if strings.HasPrefix(raw, p.prefix) {
			return Stage{Kind: p.kind, TestID: strings.TrimPrefix(raw, p.prefix)}
		}
	}
	if strings.HasPrefix(raw, prefPracticeAck) && strings.HasSuffix(raw, "_ack") {
		body := strings.TrimSuffix(strings.TrimPrefix(raw, prefPracticeAck), "_ack")
		if i := strings.IndexByte(body, '_'); i > 0 {
			if day, err := strconv.Atoi(body[:i]); err == nil {
				return Stage{Kind: StagePracticeAck, Day: day, Slot: Slot(body[i+1:])}
			}
		}
	}
	if strings.HasPrefix(raw, prefAdminSetDay) {
		if day, err := strconv.Atoi(strings.TrimPrefix(raw, prefAdminSetDay)); err == nil {
			return Stage{Kind: StageAdminSetDay, Day: day}
		}
	}
	return Stage{Kind: StageNone}
}
