// Package calendar provides account-scoped Google Calendar operations:
// listing calendars and events with a caller-supplied result budget,
// creating calendars, and inserting events with optional Google Meet
// conferencing.
//
// Clients are constructed per call from the credential store; there is no
// client pooling. Paginated reads fetch chunks no larger than the upstream
// page limit and stop as soon as the budget is met or the upstream runs out
// of pages, so API calls and memory are bounded by the requested budget.
//
// Example usage:
//
//	client, err := calendar.NewClientForAccount(ctx, store, "work")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	events, err := client.ListEvents(ctx, "primary", 50)
package calendar
