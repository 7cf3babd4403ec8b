// Package payroll computes staff pay.
package payroll

// Salary is a monthly pay plus a yearly bonus, in the smallest currency unit.
type Salary struct {
	Pay   int64 `json:"pay" validate:"gte=0"`
	Bonus int64 `json:"bonus" validate:"gte=0"`
}

func NewSalary(pay, bonus int64) *Salary {
	return &Salary{Pay: pay, Bonus: bonus}
}

// AnnualSalary returns twelve monthly pays plus the bonus.
func (s Salary) AnnualSalary() int64 {
	return (s.Pay * 12) + s.Bonus
}

// Employee references a Salary it does not own; the same Salary may be shared by several employees.
type Employee struct {
	Name   string  `json:"name" validate:"required"`
	Age    int     `json:"age" validate:"gte=0"`
	Salary *Salary `json:"salary" validate:"required"`
}

func NewEmployee(name string, age int, salary *Salary) *Employee {
	return &Employee{Name: name, Age: age, Salary: salary}
}

func (e *Employee) TotalSalary() int64 {
	if e.Salary == nil {
		return 0
	}
	return e.Salary.AnnualSalary()
}
