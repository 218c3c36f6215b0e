package formkit_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit"
)

func contactDefinition() formkit.Definition {
	return formkit.Definition{
		Name: "contact",
		Fields: func() []formkit.Field {
			return []formkit.Field{
				formkit.Text("firstname", "First name",
					formkit.WithRules(formkit.Required())),
				formkit.Email("email", "Email",
					formkit.WithRules(formkit.Required())),
				formkit.Textarea("message", "Message"),
			}
		},
	}
}

func TestMake_ConfigurationErrors(t *testing.T) {
	t.Parallel()

	t.Run("missing name", func(t *testing.T) {
		t.Parallel()
		_, err := formkit.Make(formkit.Definition{
			Fields: func() []formkit.Field {
				return []formkit.Field{formkit.Text("a", "A")}
			},
		})
		assert.ErrorIs(t, err, formkit.ErrMissingFormName)
	})

	t.Run("nil fields func", func(t *testing.T) {
		t.Parallel()
		_, err := formkit.Make(formkit.Definition{Name: "empty"})
		assert.ErrorIs(t, err, formkit.ErrNoFields)
	})

	t.Run("no fields", func(t *testing.T) {
		t.Parallel()
		_, err := formkit.Make(formkit.Definition{
			Name:   "empty",
			Fields: func() []formkit.Field { return nil },
		})
		assert.ErrorIs(t, err, formkit.ErrNoFields)
	})

	t.Run("duplicate field name", func(t *testing.T) {
		t.Parallel()
		_, err := formkit.Make(formkit.Definition{
			Name: "dup",
			Fields: func() []formkit.Field {
				return []formkit.Field{
					formkit.Text("email", "Email"),
					formkit.Email("email", "Email again"),
				}
			},
		})
		assert.ErrorIs(t, err, formkit.ErrDuplicateField)
	})

	t.Run("invalid field name", func(t *testing.T) {
		t.Parallel()
		_, err := formkit.Make(formkit.Definition{
			Name: "bad",
			Fields: func() []formkit.Field {
				return []formkit.Field{formkit.Text("", "Empty")}
			},
		})
		assert.ErrorIs(t, err, formkit.ErrInvalidFieldName)
	})
}

func TestForm_PendingState(t *testing.T) {
	t.Parallel()

	form, err := formkit.Make(contactDefinition())
	require.NoError(t, err)

	assert.Equal(t, formkit.StatusPending, form.Status())
	assert.False(t, form.Failed())
	assert.False(t, form.Successful())
	assert.Empty(t, form.Data())
	assert.Empty(t, form.Errors())
	assert.Empty(t, form.Old("firstname"))
	assert.Empty(t, form.Error("fallback"))
	assert.Empty(t, form.Success("fallback"))
	assert.NoError(t, form.Err())
}

func TestForm_ValidateFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	form, err := formkit.Make(contactDefinition())
	require.NoError(t, err)

	// firstname omitted entirely, email present but malformed
	result := form.Validate(ctx, formkit.MapValues{
		"email":   "not-an-email",
		"message": "hello",
	})

	assert.Same(t, form, result)
	assert.True(t, form.Failed())
	assert.False(t, form.Successful())
	assert.Equal(t, formkit.StatusFailed, form.Status())

	errs := form.Errors()
	require.Len(t, errs, 2)
	assert.Equal(t, []string{"field is required"}, errs["firstname"])
	assert.Equal(t, []string{"must be a valid email address"}, errs["email"])
	assert.NotContains(t, errs, "message")

	// raw input preserved for redisplay
	assert.Equal(t, "not-an-email", form.Old("email"))
	assert.Equal(t, "hello", form.Old("message"))
	assert.Equal(t, "", form.Old("firstname"))

	// data stays empty on failure
	assert.Empty(t, form.Data())
	assert.Equal(t, "something went wrong", form.Error("something went wrong"))
	assert.Empty(t, form.Success("done"))
}

func TestForm_ValidateSuccess(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	form, err := formkit.Make(contactDefinition())
	require.NoError(t, err)

	form.Validate(ctx, formkit.MapValues{
		"firstname": "Ada",
		"email":     "ada@example.com",
		"message":   "",
	})

	assert.True(t, form.Successful())
	assert.Empty(t, form.Errors())
	assert.Equal(t, map[string]any{
		"firstname": "Ada",
		"email":     "ada@example.com",
		"message":   "",
	}, form.Data())
	assert.Equal(t, "thanks", form.Success("thanks"))
	assert.Empty(t, form.Error("oops"))
}

func TestForm_OptionalRulesSkipEmpty(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	def := formkit.Definition{
		Name: "profile",
		Fields: func() []formkit.Field {
			return []formkit.Field{
				formkit.Text("nickname", "Nickname",
					formkit.WithRules(formkit.MinLen(3))),
				formkit.Email("backup_email", "Backup email"),
			}
		},
	}
	form, err := formkit.Make(def)
	require.NoError(t, err)

	// both optional fields empty: no errors at all
	form.Validate(ctx, formkit.MapValues{})
	assert.True(t, form.Successful())
}

func TestForm_RuleOrderPreserved(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	def := formkit.Definition{
		Name: "signup",
		Fields: func() []formkit.Field {
			return []formkit.Field{
				formkit.Password("password", "Password",
					formkit.WithRules(formkit.MinLen(10), formkit.MaxLen(4))),
			}
		},
	}
	form, err := formkit.Make(def)
	require.NoError(t, err)

	form.Validate(ctx, formkit.MapValues{"password": "short"})
	require.True(t, form.Failed())
	assert.Equal(t, []string{
		"must be at least 10 characters long",
		"must be at most 4 characters long",
	}, form.Errors()["password"])
}

func TestForm_RevalidationRejected(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	form, err := formkit.Make(contactDefinition())
	require.NoError(t, err)

	form.Validate(ctx, formkit.MapValues{"firstname": "Ada", "email": "ada@example.com"})
	require.True(t, form.Successful())

	// second pass must not change the outcome
	form.Validate(ctx, formkit.MapValues{})
	assert.True(t, form.Successful())
	assert.Empty(t, form.Errors())
	assert.ErrorIs(t, form.Err(), formkit.ErrAlreadyValidated)
}

func TestForm_Hooks(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("before short-circuits", func(t *testing.T) {
		t.Parallel()
		def := contactDefinition()
		def.BeforeValidate = func(ctx context.Context, form *formkit.Form, values formkit.Values) error {
			return errors.New("submissions are closed")
		}
		form, err := formkit.Make(def)
		require.NoError(t, err)

		form.Validate(ctx, formkit.MapValues{"firstname": "Ada", "email": "ada@example.com"})
		assert.True(t, form.Failed())
		assert.Equal(t, "submissions are closed", form.Error(""))
	})

	t.Run("after runs cross-field checks", func(t *testing.T) {
		t.Parallel()
		def := formkit.Definition{
			Name: "password_change",
			Fields: func() []formkit.Field {
				return []formkit.Field{
					formkit.Password("password", "Password", formkit.WithRules(formkit.Required())),
					formkit.Password("confirm", "Confirm", formkit.WithRules(formkit.Required())),
				}
			},
			AfterValidate: func(ctx context.Context, form *formkit.Form, values formkit.Values) error {
				if values.Get("password") != values.Get("confirm") {
					form.AddError("confirm", "passwords do not match")
				}
				return nil
			},
		}
		form, err := formkit.Make(def)
		require.NoError(t, err)

		form.Validate(ctx, formkit.MapValues{"password": "secret123", "confirm": "secret124"})
		require.True(t, form.Failed())
		assert.Equal(t, []string{"passwords do not match"}, form.Errors()["confirm"])
	})

	t.Run("after skipped when fields failed", func(t *testing.T) {
		t.Parallel()
		called := false
		def := contactDefinition()
		def.AfterValidate = func(ctx context.Context, form *formkit.Form, values formkit.Values) error {
			called = true
			return nil
		}
		form, err := formkit.Make(def)
		require.NoError(t, err)

		form.Validate(ctx, formkit.MapValues{})
		assert.True(t, form.Failed())
		assert.False(t, called)
	})
}

func TestForm_DefinitionMessages(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	def := contactDefinition()
	def.SuccessMessage = "message sent"
	def.ErrorMessage = "please fix the errors below"

	failed, err := formkit.Make(def)
	require.NoError(t, err)
	failed.Validate(ctx, formkit.MapValues{})
	assert.Equal(t, "please fix the errors below", failed.Error("fallback"))

	ok, err := formkit.Make(def)
	require.NoError(t, err)
	ok.Validate(ctx, formkit.MapValues{"firstname": "Ada", "email": "ada@example.com"})
	assert.Equal(t, "message sent", ok.Success("fallback"))
}

func TestMakeWith_InitialValues(t *testing.T) {
	t.Parallel()

	form, err := formkit.MakeWith(contactDefinition(), map[string]any{
		"firstname": "Ada",
		"unknown":   "ignored",
	})
	require.NoError(t, err)

	field, ok := form.Field("firstname")
	require.True(t, ok)
	assert.Equal(t, "Ada", field.Value())

	_, ok = form.Field("unknown")
	assert.False(t, ok)
}

func TestForm_StateRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	submitted, err := formkit.Make(contactDefinition())
	require.NoError(t, err)
	submitted.Validate(ctx, formkit.MapValues{"email": "broken"})
	require.True(t, submitted.Failed())

	state := submitted.State()
	assert.Equal(t, formkit.StatusFailed, state.Status)

	restored, err := formkit.Make(contactDefinition())
	require.NoError(t, err)
	restored.Hydrate(state)

	assert.True(t, restored.Failed())
	assert.Equal(t, submitted.Errors(), restored.Errors())
	assert.Equal(t, "broken", restored.Old("email"))

	field, ok := restored.Field("email")
	require.True(t, ok)
	assert.Equal(t, "broken", field.Value())
	assert.True(t, field.HasErrors())
}

func TestForm_HydratePendingStateIsNoop(t *testing.T) {
	t.Parallel()

	form, err := formkit.Make(contactDefinition())
	require.NoError(t, err)

	form.Hydrate(formkit.State{Status: formkit.StatusPending})
	assert.Equal(t, formkit.StatusPending, form.Status())
	assert.NoError(t, form.Err())
}

func TestForm_HydrateTerminalFormRejected(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	form, err := formkit.Make(contactDefinition())
	require.NoError(t, err)
	form.Validate(ctx, formkit.MapValues{"firstname": "Ada", "email": "ada@example.com"})
	require.True(t, form.Successful())

	form.Hydrate(formkit.State{Status: formkit.StatusFailed})
	assert.True(t, form.Successful())
	assert.ErrorIs(t, form.Err(), formkit.ErrAlreadyValidated)
}

func TestForm_TypedData(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	def := formkit.Definition{
		Name: "order",
		Fields: func() []formkit.Field {
			return []formkit.Field{
				formkit.Number("quantity", "Quantity", formkit.WithRules(formkit.Required())),
				formkit.Checkbox("gift", "Gift wrap"),
				formkit.Select("size", "Size", []formkit.Choice{
					{Value: "s", Label: "Small"},
					{Value: "m", Label: "Medium"},
				}),
			}
		},
	}
	form, err := formkit.Make(def)
	require.NoError(t, err)

	form.Validate(ctx, formkit.MapValues{
		"quantity": "3",
		"gift":     "on",
		"size":     "m",
	})
	require.True(t, form.Successful())

	data := form.Data()
	assert.Equal(t, int64(3), data["quantity"])
	assert.Equal(t, true, data["gift"])
	assert.Equal(t, "m", data["size"])
}

func TestForm_SelectRejectsUnknownChoice(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	def := formkit.Definition{
		Name: "order",
		Fields: func() []formkit.Field {
			return []formkit.Field{
				formkit.Select("size", "Size", []formkit.Choice{
					{Value: "s", Label: "Small"},
					{Value: "m", Label: "Medium"},
				}, formkit.WithRules(formkit.Required())),
			}
		},
	}
	form, err := formkit.Make(def)
	require.NoError(t, err)

	form.Validate(ctx, formkit.MapValues{"size": "xxl"})
	require.True(t, form.Failed())
	assert.Equal(t, []string{"must be one of: s, m"}, form.Errors()["size"])
}
