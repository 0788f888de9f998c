package handlers

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"spiritualgifts/services"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

var indexPattern = regexp.MustCompile(`\[(\d+)\]`)

// validationMessages is keyed by struct namespace with slice indexes
// collapsed to []. Entries under a slice take the index as their only verb.
var validationMessages = map[string]string{
	"SignupRequest.Fullname": "Full name and email are required",
	"SignupRequest.Email":    "Full name and email are required",
	"LoginRequest.Email":     "Email is required",

	"SubmitQuizRequest.Responses":               "Responses are required",
	"SubmitQuizRequest.Responses[].QuestionID":  "Response at index %d is missing question_id",
	"SubmitQuizRequest.Responses[].AnswerValue": "Response at index %d must have answer_value between " + strconv.Itoa(services.MinAnswerValue) + " and " + strconv.Itoa(services.MaxAnswerValue),

	"QuestionInput.GiftCategory": "gift_category and question_text are required",
	"QuestionInput.QuestionText": "gift_category and question_text are required",

	"UpdateQuestionRequest.GiftCategory":  "gift_category, question_text and question_order are required",
	"UpdateQuestionRequest.QuestionText":  "gift_category, question_text and question_order are required",
	"UpdateQuestionRequest.QuestionOrder": "gift_category, question_text and question_order are required",

	"BulkCreateRequest.Questions":                "Questions array is required",
	"BulkCreateRequest.Questions[].GiftCategory": "Question at index %d is missing gift_category or question_text",
	"BulkCreateRequest.Questions[].QuestionText": "Question at index %d is missing gift_category or question_text",
}

// validationMessage turns the first failed binding rule into the message
// the client sees.
func validationMessage(errs validator.ValidationErrors) string {
	fe := errs[0]
	ns := fe.StructNamespace()
	key := indexPattern.ReplaceAllString(ns, "[]")
	msg, ok := validationMessages[key]
	if !ok {
		return fmt.Sprintf("Invalid value for %s", fe.Field())
	}
	if m := indexPattern.FindStringSubmatch(ns); m != nil {
		index, _ := strconv.Atoi(m[1])
		return fmt.Sprintf(msg, index)
	}
	return msg
}
