package contact

import (
	"errors"

	"github.com/AlecAivazis/survey/v2"

	"github.com/Alijeyrad/portfolio_backend/internal/service/contact"
)

// fieldValidator checks an answer with the same rule the form uses on blur.
func fieldValidator(f contact.Field) survey.Validator {
	return func(ans interface{}) error {
		s, _ := ans.(string)
		if fe := contact.Validate(f, s); fe != nil {
			return errors.New(fe.Message)
		}
		return nil
	}
}

func questions(defaults contact.Form) []*survey.Question {
	return []*survey.Question{
		{
			Name:     string(contact.FieldName),
			Prompt:   &survey.Input{Message: "Your name:", Default: defaults.Name},
			Validate: fieldValidator(contact.FieldName),
		},
		{
			Name:     string(contact.FieldEmail),
			Prompt:   &survey.Input{Message: "Your email:", Default: defaults.Email},
			Validate: fieldValidator(contact.FieldEmail),
		},
		{
			Name:     string(contact.FieldSubject),
			Prompt:   &survey.Input{Message: "Subject:", Default: defaults.Subject},
			Validate: fieldValidator(contact.FieldSubject),
		},
		{
			Name:     string(contact.FieldMessage),
			Prompt:   &survey.Multiline{Message: "Message:", Default: defaults.Message},
			Validate: fieldValidator(contact.FieldMessage),
		},
	}
}

// promptForm asks for every field, starting from the values already given.
func promptForm(defaults contact.Form, opts ...survey.AskOpt) (contact.Form, error) {
	var answers struct {
		Name    string `survey:"name"`
		Email   string `survey:"email"`
		Subject string `survey:"subject"`
		Message string `survey:"message"`
	}
	if err := survey.Ask(questions(defaults), &answers, opts...); err != nil {
		return contact.Form{}, err
	}
	return contact.Form{
		Name:    answers.Name,
		Email:   answers.Email,
		Subject: answers.Subject,
		Message: answers.Message,
	}, nil
}
