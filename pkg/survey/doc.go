// Package survey hosts the survey form component: a pure state machine that
// folds input events into snapshots, a Controller that runs the question
// fetches the machine asks for, the read-only summary of the last successful
// submission, and a session Store that keeps one Controller per respondent.
package survey
