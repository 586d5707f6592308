// Package validator provides declarative, field-oriented validation rules for
// user input such as lead inquiries, product listings and sign-up forms.
//
// A Rule couples a Check function with the ValidationError reported when the
// check fails. Apply evaluates a list of rules and aggregates every failure
// into ValidationErrors, which implements error:
//
//	err := validator.Apply(
//	    validator.Required("name", in.Name),
//	    validator.ValidEmail("email", in.Email),
//	    validator.ValidPhone("phone", in.Phone),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    // verrs.Map() -> {"email": ["must be a valid email address"]}
//	}
//
// The format predicates IsEmail and IsPhone are exported on their own for
// callers that only need a boolean answer.
//
// Rules hold no shared state and are safe for concurrent use.
package validator
