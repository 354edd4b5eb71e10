// Package dispatch sends form submissions to the notification endpoints. A
// Dispatcher allows a single request in flight at a time and reports the
// outcome as a Result instead of an error, so each form decides through its
// Policy whether a failed delivery stops the user (FailVisible) or is logged
// and ignored (OptimisticAdvance).
package dispatch
