package tracker

import "github.com/julianstephens/stitchlog/internal/models"

// SetEarningsGoal sets the goal amount and re-anchors progress at now,
// so only work recorded from this moment counts toward the new goal.
func (m *Manager) SetEarningsGoal(userID string, amount float64) error {
	anchor := m.nowISO()
	return m.UpdateUser(userID, func(u *models.User) {
		u.EarningsGoal = amount
		u.EarningsStart = anchor
	})
}

// ResetEarningsAnchor keeps the goal amount but restarts progress from
// zero as of now.
func (m *Manager) ResetEarningsAnchor(userID string) error {
	anchor := m.nowISO()
	return m.UpdateUser(userID, func(u *models.User) {
		u.EarningsStart = anchor
	})
}
