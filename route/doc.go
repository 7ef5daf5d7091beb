// Package route ties classification, model selection and pricing together.
//
// A Router takes a task description, classifies it to a tier, picks the
// tier's model, estimates the output tokens and prices the result against
// both the chosen tier and the premium tier:
//
//	r, err := route.New()
//	d, err := r.Route(ctx, route.Task{Description: "Summarize this article"})
//	// d.Tier == model.TierModerate, d.Model == "claude-sonnet-4"
//
// Run drives a caller-supplied attempt function and re-routes with the
// previous-failure flag set when an attempt fails, up to the escalation
// policy's attempt limit. The router never invokes a model itself.
package route
