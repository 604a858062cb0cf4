package repository

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// validateRecord 在写库前校验记录；失败说明调用方逻辑有误，不应出现在正常流程
func validateRecord(record interface{}) error {
	if err := validate.Struct(record); err != nil {
		return fmt.Errorf("invalid %T: %w", record, err)
	}
	return nil
}
