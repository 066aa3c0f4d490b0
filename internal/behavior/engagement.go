// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package behavior

// Engagement score weights.
const (
	likedWeight        = 20.0
	replayWeight       = 15.0
	reactionWeight     = 10.0
	commentWeight      = 12.0
	skippedPenalty     = 30.0
	longWatchBonus     = 25.0
	longWatchThreshold = 60_000 // ms
)

// EngagementScore returns an additive, non-negative score describing how
// strongly the viewer engaged with videoID. Replays, reactions, and comments
// are uncapped.
func (s *State) EngagementScore(videoID string) float64 {
	var score float64

	if s.HasLiked(videoID) {
		score += likedWeight
	}
	score += replayWeight * float64(s.replays[videoID])
	score += reactionWeight * float64(len(s.reactions[videoID]))
	score += commentWeight * float64(len(s.comments[videoID]))
	if s.IsSkipped(videoID) {
		score -= skippedPenalty
	}
	if s.watchTimeMs[videoID] > longWatchThreshold {
		score += longWatchBonus
	}

	if score < 0 {
		return 0
	}
	return score
}
