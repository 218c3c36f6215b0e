// Package formkit provides declarative form definition and validation for
// Go web applications, with one-shot flash storage to carry form state
// across POST/redirect/GET.
//
// A form is declared once as a Definition and instantiated per request:
//
//	var contactForm = formkit.Definition{
//		Name: "contact",
//		Fields: func() []formkit.Field {
//			return []formkit.Field{
//				formkit.Text("firstname", "First name",
//					formkit.WithRules(formkit.Required())),
//				formkit.Email("email", "Email",
//					formkit.WithRules(formkit.Required())),
//				formkit.Textarea("message", "Message"),
//			}
//		},
//	}
//
// Validation reads fluently and never returns an error for bad user input;
// failures are form state:
//
//	form, err := formkit.Make(contactForm)
//	if err != nil {
//		// configuration mistake, fail fast
//	}
//	if form.ValidateRequest(ctx, r).Failed() {
//		return formkit.Redirect("/contact", formkit.WithForm(form, store))
//	}
//	data := form.Data() // typed values, only populated on success
//
// The redirect target restores the outcome through the same store:
//
//	form, _ := formkit.Make(contactForm)
//	formkit.Restore(ctx, w, r, store, form)
//	// form now carries errors and old input for rendering
//
// Flash stores live in pkg/flash: encrypted cookies, in-memory with TTL,
// Redis and Postgres, all with strict one-shot consumption. Rendering
// helpers in this package produce templ components for fields and whole
// forms; YAML schemas can replace hand-written definitions via
// DefinitionFromYAML.
package formkit
