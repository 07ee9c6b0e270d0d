package tui

// assignedMsg reports the outcome of storing a category choice.
type assignedMsg struct {
	err           error
	transactionID int64
	categoryID    int64
}
