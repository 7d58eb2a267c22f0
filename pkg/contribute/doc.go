// Package contribute validates the contribution form and turns a valid
// submission into a mailto link. Nothing is sent server-side; the
// visitor's own email client delivers the message.
package contribute
