package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"syscall"

	"golang.org/x/term"

	"github.com/sabaq/sabaq/core"
	"github.com/sabaq/sabaq/core/attachment"
	"github.com/sabaq/sabaq/core/course"
	"github.com/sabaq/sabaq/core/user"
	apisvc "github.com/sabaq/sabaq/services/api"
)

// tokenEnvVar holds the bearer token between CLI invocations.
const tokenEnvVar = "SABAQ_TOKEN"

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp      = errors.New("help provided")
	errLoggedOut = errors.New("not logged in; run the login command first (or set " + tokenEnvVar + ")")
)

type commandLine struct {
	client    *apisvc.Client
	uploader  attachment.Uploader
	courseSvc *course.Service
	usrSvc    *user.Service
	logger    core.Logger
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  login -username USERNAME|EMAIL - log in; prints a token for " + tokenEnvVar)
	fmt.Println("  courses - list all courses")
	fmt.Println("  course -id ID - show a course and its videos")
	fmt.Println("  create-course -title TITLE [-description TEXT] [-thumbnail PATH] - create a course")
	fmt.Println("  delete-course -id ID - delete a course")
	fmt.Println("  add-video -course ID -title TITLE (-file PATH | -link URL) [-thumbnail PATH] - attach a video")
	fmt.Println("  delete-video -course ID -id ID - delete a video")
	fmt.Println("  add-pdf -course ID -title TITLE -file PATH - attach a PDF document")
	fmt.Println("  grant-access -user ID -course ID -days N - open a course to a user")
	fmt.Println("  users - list all users")
	fmt.Println("  edit-user -id ID [-email EMAIL] [-first-name NAME] [-last-name NAME] [-role ROLE] - update a user")
	fmt.Println("  delete-user -id ID - delete a user")
	fmt.Println("  register-account -email EMAIL -first-name NAME -last-name NAME - register a student account")
}

// loadSession installs the ambient token on the API client. Commands
// that talk to authenticated endpoints call it first.
func (cli *commandLine) loadSession() error {
	token := os.Getenv(tokenEnvVar)
	if token == "" {
		return errLoggedOut
	}
	session, err := core.NewSession(token)
	if err != nil {
		return err
	}
	if session.Expired() {
		return errLoggedOut
	}
	cli.client.SetSession(session)
	return nil
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	switch args[1] {
	case "login":
		cmd := flag.NewFlagSet("login", flag.ExitOnError)
		uname := cmd.String("username", "", "The username or email. The password will be prompted next.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *uname == "" {
			cmd.Usage()
			return errHelp
		}
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			cmd.Usage()
			return errHelp
		}
		return cli.login(*uname, string(pwd))

	case "courses":
		if err := cli.loadSession(); err != nil {
			return err
		}
		return cli.listCourses()

	case "course":
		cmd := flag.NewFlagSet("course", flag.ExitOnError)
		id := cmd.Int("id", 0, "The course id.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *id == 0 {
			cmd.Usage()
			return errHelp
		}
		if err := cli.loadSession(); err != nil {
			return err
		}
		return cli.showCourse(*id)

	case "create-course":
		cmd := flag.NewFlagSet("create-course", flag.ExitOnError)
		title := cmd.String("title", "", "The course title.")
		description := cmd.String("description", "", "The course description.")
		thumbnail := cmd.String("thumbnail", "", "Path to a thumbnail image.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *title == "" {
			cmd.Usage()
			return errHelp
		}
		if err := cli.loadSession(); err != nil {
			return err
		}
		return cli.createCourse(*title, *description, *thumbnail)

	case "delete-course":
		cmd := flag.NewFlagSet("delete-course", flag.ExitOnError)
		id := cmd.Int("id", 0, "The course id.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *id == 0 {
			cmd.Usage()
			return errHelp
		}
		if err := cli.loadSession(); err != nil {
			return err
		}
		return cli.courseSvc.Delete(ctxBG(), *id)

	case "add-video":
		cmd := flag.NewFlagSet("add-video", flag.ExitOnError)
		courseID := cmd.Int("course", 0, "The owning course id.")
		title := cmd.String("title", "", "The video title.")
		file := cmd.String("file", "", "Path to a local video file.")
		link := cmd.String("link", "", "An external video link (YouTube).")
		thumbnail := cmd.String("thumbnail", "", "Path to a preview image.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *courseID == 0 || *title == "" || (*file == "") == (*link == "") {
			cmd.Usage()
			return errHelp
		}
		if err := cli.loadSession(); err != nil {
			return err
		}
		return cli.addVideo(*courseID, *title, *file, *link, *thumbnail)

	case "delete-video":
		cmd := flag.NewFlagSet("delete-video", flag.ExitOnError)
		courseID := cmd.Int("course", 0, "The owning course id.")
		id := cmd.Int("id", 0, "The video id.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *courseID == 0 || *id == 0 {
			cmd.Usage()
			return errHelp
		}
		if err := cli.loadSession(); err != nil {
			return err
		}
		return cli.courseSvc.DeleteVideo(ctxBG(), *courseID, *id)

	case "add-pdf":
		cmd := flag.NewFlagSet("add-pdf", flag.ExitOnError)
		courseID := cmd.Int("course", 0, "The owning course id.")
		title := cmd.String("title", "", "The document title.")
		file := cmd.String("file", "", "Path to a local PDF file.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *courseID == 0 || *title == "" || *file == "" {
			cmd.Usage()
			return errHelp
		}
		if err := cli.loadSession(); err != nil {
			return err
		}
		return cli.addPDF(*courseID, *title, *file)

	case "grant-access":
		cmd := flag.NewFlagSet("grant-access", flag.ExitOnError)
		userID := cmd.Int("user", 0, "The user id.")
		courseID := cmd.Int("course", 0, "The course id.")
		days := cmd.Int("days", 0, "Access duration in days.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *userID == 0 || *courseID == 0 || *days == 0 {
			cmd.Usage()
			return errHelp
		}
		if err := cli.loadSession(); err != nil {
			return err
		}
		return cli.grantAccess(*userID, *courseID, *days)

	case "users":
		if err := cli.loadSession(); err != nil {
			return err
		}
		return cli.listUsers()

	case "edit-user":
		cmd := flag.NewFlagSet("edit-user", flag.ExitOnError)
		id := cmd.Int("id", 0, "The user id.")
		email := cmd.String("email", "", "New email.")
		firstName := cmd.String("first-name", "", "New first name.")
		lastName := cmd.String("last-name", "", "New last name.")
		role := cmd.String("role", "", "New role (admin|student).")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *id == 0 {
			cmd.Usage()
			return errHelp
		}
		if err := cli.loadSession(); err != nil {
			return err
		}
		return cli.editUser(*id, *email, *firstName, *lastName, *role)

	case "delete-user":
		cmd := flag.NewFlagSet("delete-user", flag.ExitOnError)
		id := cmd.Int("id", 0, "The user id.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *id == 0 {
			cmd.Usage()
			return errHelp
		}
		if err := cli.loadSession(); err != nil {
			return err
		}
		return cli.usrSvc.Delete(ctxBG(), *id)

	case "register-account":
		cmd := flag.NewFlagSet("register-account", flag.ExitOnError)
		email := cmd.String("email", "", "The account holder's email.")
		firstName := cmd.String("first-name", "", "First name.")
		lastName := cmd.String("last-name", "", "Last name.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *email == "" || *firstName == "" || *lastName == "" {
			cmd.Usage()
			return errHelp
		}
		if err := cli.loadSession(); err != nil {
			return err
		}
		return cli.registerAccount(*email, *firstName, *lastName)

	default:
		cli.printUsage()
		return errHelp
	}
}
