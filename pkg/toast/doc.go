// Package toast provides feedback notifications for actions.
//
// Toasts ride along with an action's response as client events rather than
// rendered markup, so any view can trigger one without owning a target
// element. The thin client turns each event into a transient notice:
//
//	window.addEventListener("electa:toast", (e) => {
//	    const { level, message, title } = e.detail;
//	    ...
//	});
//
// Server side:
//
//	if _, err := prefs.AcceptAll(ctx); err == nil {
//	    toast.Success(res, "All cookies accepted")
//	}
package toast
