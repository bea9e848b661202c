package domain

// Transition names a staff action on an enquiry
type Transition string

const (
	TransitionReview         Transition = "review"
	TransitionAcceptTime     Transition = "accept_time"
	TransitionProposeTime    Transition = "propose_time"
	TransitionSchedule       Transition = "schedule"
	TransitionStart          Transition = "start"
	TransitionComplete       Transition = "complete"
	TransitionCancel         Transition = "cancel"
	TransitionReject         Transition = "reject"
	TransitionOfflinePayment Transition = "offline_payment"
	TransitionSyncPayment    Transition = "sync_payment"
)

// transitionSources lists the states each status-changing transition may start from.
// Cancel and reject are allowed from any non-terminal state and are not listed.
var transitionSources = map[Transition][]EnquiryStatus{
	TransitionReview:      {StatusEnquiryReceived},
	TransitionAcceptTime:  {StatusEnquiryReceived, StatusUnderReview},
	TransitionProposeTime: {StatusEnquiryReceived, StatusUnderReview},
	TransitionSchedule:    {StatusTimeAccepted, StatusAlternateTimeProposed},
	TransitionStart:       {StatusScheduled, StatusTimeAccepted},
	TransitionComplete:    {StatusInProgress, StatusScheduled, StatusTimeAccepted},
}

var transitionTargets = map[Transition]EnquiryStatus{
	TransitionReview:      StatusUnderReview,
	TransitionAcceptTime:  StatusTimeAccepted,
	TransitionProposeTime: StatusAlternateTimeProposed,
	TransitionSchedule:    StatusScheduled,
	TransitionStart:       StatusInProgress,
	TransitionComplete:    StatusCompleted,
	TransitionCancel:      StatusCancelled,
	TransitionReject:      StatusRejected,
}

// Target returns the status the transition leads to. Payment transitions keep the status.
func (t Transition) Target() (EnquiryStatus, bool) {
	s, ok := transitionTargets[t]
	return s, ok
}

// NeedsAvailability reports whether the transition must run through the availability check
func (t Transition) NeedsAvailability() bool {
	return t == TransitionAcceptTime || t == TransitionProposeTime || t == TransitionSchedule
}

// CanTransition reports whether t is allowed from status from.
func CanTransition(from EnquiryStatus, t Transition) bool {
	switch t {
	case TransitionCancel, TransitionReject:
		return !from.IsTerminal()
	case TransitionOfflinePayment, TransitionSyncPayment:
		return true
	}

	for _, s := range transitionSources[t] {
		if s == from {
			return true
		}
	}
	return false
}

// CheckTransition validates t against the enquiry's current state.
// noop is true when a cancel or reject targets an enquiry already in that state.
func CheckTransition(e *Enquiry, t Transition) (noop bool, err error) {
	if target, ok := t.Target(); ok && target == e.Status && (t == TransitionCancel || t == TransitionReject) {
		return true, nil
	}

	if !CanTransition(e.Status, t) {
		return false, &InvalidTransitionError{EnquiryID: e.ID, From: e.Status, Transition: t}
	}

	if t == TransitionOfflinePayment && e.IsPaid() {
		return false, &InvalidTransitionError{
			EnquiryID:  e.ID,
			From:       e.Status,
			Transition: t,
			Reason:     "payment already recorded",
		}
	}

	return false, nil
}
