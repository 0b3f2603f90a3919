package models

// Group bundles everything needed to settle one group: its participants,
// the expenses they shared and the payments already made between them.
//
// Groups are built by collaborators (group files, RPC requests) and handed
// to the calculator; the calculator never keeps a reference to them.
type Group struct {
	// Name is the display name of the group (e.g., "Roommates", "Hanoi Trip").
	Name string

	// Participants is the ordered list of member names.
	Participants []Participant

	// Expenses in the order they were entered.
	Expenses []Expense

	// Payments already made between members, applied after the expenses.
	Payments []Payment
}
