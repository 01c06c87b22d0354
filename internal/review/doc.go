// Package review decides, for each component that needs a license review,
// whether a review request must be filed, and files it.
//
// A Finder looks for an open request whose title is exactly the component's
// identifier. A Creator files a new request with a generated description. A
// Workflow drives both over a batch, strictly one subject at a time and always
// searching before creating, and collects a Report.
//
// A failed search only affects its own subject. A failed creation stops the
// batch under the default halt policy; WithPolicy(config.OnFailureContinue)
// processes the remaining subjects instead. Either way the report counts every
// subject that needed review, which is what the CLI uses as its exit status.
package review
