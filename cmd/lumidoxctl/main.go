// Command lumidoxctl is a thin CLI entrypoint over the controller core.
//
// It intentionally carries none of the original tooling's interactive-menu
// machinery (out of scope per spec.md §1): each invocation runs exactly one
// subcommand and exits. Flag parsing and colored diagnostic output follow
// the teacher's own conventions (log.SetOutput with a colored writer,
// a dedicated green print helper) rather than introducing a new CLI
// framework dependency the pack's chosen teacher never used.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/lumidox/lumidox-ii-controller/device"
	"github.com/lumidox/lumidox-ii-controller/lumidoxerr"
	"github.com/lumidox/lumidox-ii-controller/models"
)

// redWriter emits red-colored output; used to route log.Fatal-style output
// through stderr in a visually distinct way, mirroring the teacher's
// redWriter.
type redWriter struct{ w io.Writer }

func (r redWriter) Write(p []byte) (int, error) {
	out := append([]byte("\033[31m"), p...)
	out = append(out, []byte("\033[0m")...)
	return r.w.Write(out)
}

func greenf(format string, a ...any) {
	fmt.Print("\033[92m")
	fmt.Printf(format, a...)
	fmt.Print("\033[0m\n")
}

func main() {
	log.SetFlags(0)
	log.SetOutput(redWriter{os.Stderr})

	var (
		configPath = flag.String("config", "", "path to lumidox.json or lumidox.toml (defaults to auto-connect)")
		port       = flag.String("port", "", "serial port to use instead of auto-connect")
		baud       = flag.Int("baud", 19200, "baud rate when -port is given")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: lumidoxctl [flags] <command> [args]\n\nCommands:\n"+
			"  list-ports | detect-ports | port-diagnostics | test-baud <port>\n"+
			"  info | status | read-state\n"+
			"  arm | off | stage1..stage5 | current <mA>\n"+
			"  read-arm-current | read-fire-current | set-arm-current <mA>\n"+
			"  stage-info <n> | stage-arm <n> | stage-voltages <n>\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	cfg := models.DefaultConfig()
	if *configPath != "" {
		loaded, err := models.LoadConfig(*configPath)
		if err != nil {
			fail(err)
		}
		cfg = loaded
	}
	if *port != "" {
		cfg.Port = *port
		cfg.Baud = *baud
	}

	if err := run(cfg, args[0], args[1:]); err != nil {
		fail(err)
	}
}

// fail prints err and exits with the code its lumidoxerr.Kind maps to
// (spec §6: protocol=2, device=3, invalid input=4, config=5, io/serial=6).
func fail(err error) {
	log.Print(err)
	code := 1
	var le *lumidoxerr.Error
	if asLumidoxErr(err, &le) {
		code = le.Kind.ExitCode()
	}
	os.Exit(code)
}

func asLumidoxErr(err error, out **lumidoxerr.Error) bool {
	if le, ok := err.(*lumidoxerr.Error); ok {
		*out = le
		return true
	}
	return false
}

func run(cfg *models.Config, cmd string, rest []string) error {
	switch cmd {
	case "list-ports", "detect-ports":
		return cmdDetectPorts(cfg)
	case "port-diagnostics":
		return cmdPortDiagnostics(cfg)
	case "test-baud":
		if len(rest) != 1 {
			return lumidoxerr.InvalidInputError("test-baud requires exactly one port argument")
		}
		return cmdTestBaud(cfg, rest[0])
	}

	session, report, err := connect(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = session.Close() }()

	switch cmd {
	case "info":
		return cmdInfo(session, report, cfg.MaxCurrentMA)
	case "status", "read-state":
		return cmdStatus(session)
	case "arm":
		return session.Arm()
	case "off":
		return session.Off()
	case "stage1", "stage2", "stage3", "stage4", "stage5":
		return cmdFireStage(session, cmd)
	case "current":
		return cmdSetCurrent(session, rest)
	case "read-arm-current":
		return printInt32(session.ReadArmCurrent())
	case "read-fire-current":
		return printInt32(session.ReadFireCurrent())
	case "set-arm-current":
		mA, err := parseCurrentArg(rest)
		if err != nil {
			return err
		}
		return session.SetArmCurrent(mA)
	case "stage-info":
		return cmdStageInfo(session, rest)
	case "stage-arm":
		return cmdStageArm(session, rest)
	case "stage-voltages":
		return cmdStageVoltages(session, rest)
	default:
		return lumidoxerr.InvalidInputError("unknown command %q", cmd)
	}
}

func connect(cfg *models.Config) (*device.Session, *device.ConnectionReport, error) {
	if cfg.Port != "" {
		session, err := device.Connect(cfg.Port, cfg.Baud, cfg.Timeout)
		if err != nil {
			return nil, nil, err
		}
		return session, &device.ConnectionReport{PortName: cfg.Port, Baud: cfg.Baud, Method: models.Fallback}, nil
	}
	return device.AutoConnect(cfg)
}

func cmdDetectPorts(cfg *models.Config) error {
	session, report, err := device.AutoConnect(cfg)
	if err != nil {
		var le *lumidoxerr.Error
		if asLumidoxErr(err, &le) && le.Kind == lumidoxerr.Device {
			fmt.Println("no candidate ports found")
			return nil
		}
		return err
	}
	defer func() { _ = session.Close() }()
	greenf("connected on %s @ %d baud via %s (%s)", report.PortName, report.Baud, report.Method, report.Elapsed)
	return nil
}

func cmdPortDiagnostics(cfg *models.Config) error {
	for _, line := range device.PortDiagnostics(cfg) {
		fmt.Println(line)
	}
	return nil
}

func cmdTestBaud(cfg *models.Config, port string) error {
	timeout := cfg.Discovery.ProbeTimeout
	if timeout <= 0 {
		timeout = 300 * time.Millisecond
	}
	results := device.TestBaudRates(port, cfg.Discovery.BaudRates, cfg.Discovery.AttemptsPerRate, timeout)
	for _, r := range results {
		status := "FAIL"
		if r.Success {
			status = "OK"
		}
		fmt.Printf("%-6d baud: %-4s quality=%.1f (%d/%d)\n", r.BaudRate, status, r.QualityScore, r.SuccessfulResponses, r.TotalAttempts)
	}
	return nil
}

func cmdInfo(session *device.Session, report *device.ConnectionReport, maxCurrentMA uint16) error {
	info, err := session.Identify(maxCurrentMA)
	if err != nil {
		return err
	}
	if report != nil {
		fmt.Printf("port: %s baud: %d\n", report.PortName, report.Baud)
	}
	fmt.Printf("firmware: %s\nmodel: %s\nserial: %s\nwavelength: %s\nmax current: %d mA\n",
		info.FirmwareVersion, info.ModelNumber, info.SerialNumber, info.Wavelength, info.MaxCurrentMA)
	return nil
}

func cmdStatus(session *device.Session) error {
	mode, err := session.ReadRemoteMode()
	if err != nil {
		return err
	}
	fmt.Printf("mode: %d\n", mode)
	return nil
}

func cmdFireStage(session *device.Session, cmd string) error {
	n, err := strconv.Atoi(cmd[len("stage"):])
	if err != nil {
		return lumidoxerr.InvalidInputError("invalid stage command %q", cmd)
	}
	stage, err := models.NewStage(n)
	if err != nil {
		return err
	}
	current, err := session.ReadStageFireCurrent(stage)
	if err != nil {
		return err
	}
	stage.CurrentMA = uint16(current)
	return session.FireStage(stage)
}

func cmdSetCurrent(session *device.Session, rest []string) error {
	mA, err := parseCurrentArg(rest)
	if err != nil {
		return err
	}
	return session.SetCurrent(mA)
}

func parseCurrentArg(rest []string) (uint16, error) {
	if len(rest) != 1 {
		return 0, lumidoxerr.InvalidInputError("expected exactly one current argument in mA")
	}
	v, err := strconv.Atoi(rest[0])
	if err != nil || v < 0 || v > 65535 {
		return 0, lumidoxerr.InvalidInputError("invalid current %q: must be 0-65535", rest[0])
	}
	return uint16(v), nil
}

func cmdStageInfo(session *device.Session, rest []string) error {
	stage, err := parseStageArg(rest)
	if err != nil {
		return err
	}
	return printInt32(session.ReadStageFireCurrent(stage))
}

func cmdStageArm(session *device.Session, rest []string) error {
	stage, err := parseStageArg(rest)
	if err != nil {
		return err
	}
	return printInt32(session.ReadStageArmCurrent(stage))
}

func cmdStageVoltages(session *device.Session, rest []string) error {
	stage, err := parseStageArg(rest)
	if err != nil {
		return err
	}
	limit, err := session.ReadStageVoltLimit(stage)
	if err != nil {
		return err
	}
	start, err := session.ReadStageVoltStart(stage)
	if err != nil {
		return err
	}
	fmt.Printf("limit: %d start: %d\n", limit, start)
	return nil
}

func parseStageArg(rest []string) (models.Stage, error) {
	if len(rest) != 1 {
		return models.Stage{}, lumidoxerr.InvalidInputError("expected exactly one stage number argument")
	}
	n, err := strconv.Atoi(rest[0])
	if err != nil {
		return models.Stage{}, lumidoxerr.InvalidInputError("invalid stage number %q", rest[0])
	}
	return models.NewStage(n)
}

func printInt32(v int32, err error) error {
	if err != nil {
		return err
	}
	fmt.Println(v)
	return nil
}
