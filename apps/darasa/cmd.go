package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"

	"golang.org/x/term"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/user"
	"github.com/trezcool/darasa/services/metrics"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp               = errors.New("help provided")
	errInvalidCredentials = errors.New("invalid credentials")
)

type commandLine struct {
	conf    *core.Config
	usrSvc  *user.Service
	mailSvc core.EmailService
	metrics *metrics.Metrics
	logger  core.Logger
	out     io.Writer

	roster *roster // seeded on first use
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  demo [-metrics]                                - run the demonstration scenario")
	fmt.Fprintln(cli.out, "  salary -name NAME -age AGE -pay PAY -bonus BONUS - print an employee's annual salary")
	fmt.Fprintln(cli.out, "  login -email EMAIL                             - log in as a member of the demo roster")
	fmt.Fprintln(cli.out, "  recoverpassword -email EMAIL                   - send a password reset email")
}

func (cli *commandLine) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	demoCmd := cli.newFlagSet("demo")
	demoMetrics := demoCmd.Bool("metrics", false, "Print the collected metrics at the end of the demo.")

	salaryCmd := cli.newFlagSet("salary")
	salaryName := salaryCmd.String("name", "", "The employee's name.")
	salaryAge := salaryCmd.Int("age", 0, "The employee's age.")
	salaryPay := salaryCmd.Int64("pay", 0, "The monthly pay.")
	salaryBonus := salaryCmd.Int64("bonus", 0, "The yearly bonus.")

	loginCmd := cli.newFlagSet("login")
	loginEmail := loginCmd.String("email", "", "The member's email. The password will be prompted next.")

	recoverPasswordCmd := cli.newFlagSet("recoverpassword")
	recoverPasswordEmail := recoverPasswordCmd.String("email", "", "The member's email.")

	switch args[1] {
	case "demo":
		if err := parse(demoCmd, args[2:]); err != nil {
			return err
		}
		return cli.demo(*demoMetrics)

	case "salary":
		if err := parse(salaryCmd, args[2:]); err != nil {
			return err
		}
		return cli.salary(*salaryName, *salaryAge, *salaryPay, *salaryBonus)

	case "login":
		if err := parse(loginCmd, args[2:]); err != nil {
			return err
		}
		if *loginEmail == "" {
			loginCmd.Usage()
			return errHelp
		}
		fmt.Fprint(cli.out, "Enter password:")
		pwd, err := readPasswordFunc(int(syscall.Stdin))
		fmt.Fprintln(cli.out)
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			loginCmd.Usage()
			return errHelp
		}
		return cli.login(*loginEmail, string(pwd))

	case "recoverpassword":
		if err := parse(recoverPasswordCmd, args[2:]); err != nil {
			return err
		}
		if *recoverPasswordEmail == "" {
			recoverPasswordCmd.Usage()
			return errHelp
		}
		return cli.recoverPassword(*recoverPasswordEmail)

	default:
		cli.printUsage()
		return errHelp
	}
}

// parse maps flag.ErrHelp to errHelp.
func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return errHelp
		}
		return err
	}
	return nil
}
