// Package model describes the survey form layout as data: field names, labels,
// control kinds, and select options. Renderers and the validation rule set
// read the same catalogue so labels and error messages never drift apart.
//
// Fields are grouped in three tiers: the identity fields every respondent
// fills in, the topic selector, and the topic-conditional groups owned by
// pkg/topic. Feedback closes the form.
package model
