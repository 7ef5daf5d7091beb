// Package tokens estimates token volumes for task descriptions.
//
// Estimation uses the rule of thumb that about 4 characters make 1 token for
// English text. No model-specific tokenizer is involved.
//
//	counter := tokens.NewEstimatingCounter()
//	n := counter.Count("Summarize this article") // 6
//
// An OutputEstimator turns a description into the number of output tokens
// the task is expected to produce, which is what tiers are priced on:
//
//	est := tokens.NewOutputEstimator()
//	out := est.Estimate("Summarize this article") // 1000 (the floor)
package tokens
