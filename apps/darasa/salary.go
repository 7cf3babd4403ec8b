package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/payroll"
)

func (cli *commandLine) salary(name string, age int, pay, bonus int64) error {
	emp := payroll.NewEmployee(core.CleanString(name), age, payroll.NewSalary(pay, bonus))
	if err := core.Validate.Struct(emp); err != nil {
		return translatedError(err)
	}

	fmt.Fprintf(cli.out, "%s (%d): annual salary %d\n", emp.Name, emp.Age, emp.TotalSalary())
	return nil
}

// translatedError turns validation errors into a readable core.ArgumentError.
func translatedError(err error) error {
	fldErrs := core.TranslateErrors(err)
	if fldErrs == nil {
		return err
	}
	msgs := make([]string, 0, len(fldErrs))
	for fld, msg := range fldErrs {
		msgs = append(msgs, fld+": "+msg)
	}
	sort.Strings(msgs)
	return core.NewArgumentError(strings.Join(msgs, "; "))
}
