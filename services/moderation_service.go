package services

import "strings"

// Repository review statuses and visibilities
const (
	RepoStatusPending    = "pending"
	RepoStatusAIReviewed = "ai_reviewed"
	RepoStatusApproved   = "approved"
	RepoStatusRejected   = "rejected"

	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
	// VisibilityPeer marks approved student notes shared with classmates
	VisibilityPeer = "peer"
)

// moderationBlocklist holds the terms the automated review flags.
// TODO: replace with the institution's full blocklist once the
// academic office publishes it.
var moderationBlocklist = []string{"badword"}

// ModerationResult is the outcome of the automated content review
type ModerationResult struct {
	Score float64 `json:"score"`
	Flags string  `json:"flags"`
}

// ReviewText runs the automated content review over extracted text.
// The score is a fixed confidence value; flags are comma-joined.
func ReviewText(text string) ModerationResult {
	score := 0.85
	var flags []string

	lower := strings.ToLower(text)
	for _, term := range moderationBlocklist {
		if strings.Contains(lower, term) {
			flags = append(flags, "inappropriate")
			break
		}
	}

	return ModerationResult{
		Score: score,
		Flags: strings.Join(flags, ","),
	}
}

// InitialStatus maps an uploader role to the file's starting review
// status and visibility. Faculty uploads go straight to the public
// pool; student uploads stay private until an admin approves them.
func InitialStatus(role string) (status, visibility string) {
	switch strings.ToLower(role) {
	case "faculty":
		return RepoStatusApproved, VisibilityPublic
	case "student":
		return RepoStatusAIReviewed, VisibilityPrivate
	default:
		return RepoStatusPending, VisibilityPrivate
	}
}
