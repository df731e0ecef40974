package authsession

import (
	zxcvbn "github.com/nbutton23/zxcvbn-go"
)

// EstimatePassword scores a candidate password 0-4 and derives advisory
// feedback for weak scores. Personal fields from params are fed to the
// estimator as user inputs so passwords built from them score lower. The
// computation is local and synchronous; CalcTime reports how long it took.
//
// Backend integrations typically satisfy [Capability.EstimatePassword] with
// this function.
func EstimatePassword(params EstimatePasswordParams) PasswordStrength {
	inputs := make([]string, 0, len(params.OtherInputs)+3)
	for _, s := range []string{params.FirstName, params.LastName, params.Email} {
		if s != "" {
			inputs = append(inputs, s)
		}
	}
	inputs = append(inputs, params.OtherInputs...)

	start := timeNow()
	result := zxcvbn.PasswordStrength(params.Password, inputs)
	elapsed := timeNow().Sub(start)

	return PasswordStrength{
		Score:            result.Score,
		Entropy:          result.Entropy,
		CrackTimeDisplay: result.CrackTimeDisplay,
		Feedback:         strengthFeedback(result.Score),
		CalcTime:         elapsed,
	}
}

// strengthFeedback returns advisory text for scores of 2 and below; higher
// scores get no feedback.
func strengthFeedback(score int) StrengthFeedback {
	switch {
	case score <= 1:
		return StrengthFeedback{
			Warning: "This password is very easy to guess.",
			Suggestions: []string{
				"Use several uncommon words.",
				"Avoid names, dates, and other personal information.",
				"Avoid repeated characters and keyboard patterns.",
			},
		}
	case score == 2:
		return StrengthFeedback{
			Warning: "This password could be guessed by an offline attacker.",
			Suggestions: []string{
				"Add another word or two.",
				"Longer passwords beat clever substitutions.",
			},
		}
	default:
		return StrengthFeedback{}
	}
}
