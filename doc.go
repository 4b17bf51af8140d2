// Package intakekit implements client-side file intake: the checks and
// lifecycle behind an upload widget that validates a picked or dropped file,
// shows an icon and size, simulates upload progress and renders an image
// preview, without sending the file anywhere.
//
// # Validation
//
// [Validate] is a pure function of a file, a size ceiling and a list of
// accepted MIME prefixes. Size is checked first:
//
//	file := intakekit.NewFile("dinner.png", 60*intakekit.MB, "image/png")
//	outcome := intakekit.Validate(file, 50*intakekit.MB, []string{"image/"})
//	outcome.Reason() // ReasonTooLarge
//
// A [Policy] bundles the same inputs for reuse and renders user-facing
// messages for rejections.
//
// # Display helpers
//
//	intakekit.IconFor("application/zip") // IconArchive
//	intakekit.FormatSize(1048576)         // "1.00 MB"
//
// # Sessions
//
// A [Session] owns at most one selected file together with its progress run
// and preview handle. Selecting another file cancels the old run and
// releases the old preview first; a rejected file changes nothing.
//
//	session := intakekit.NewSession(intakekit.ImagePolicy(10*intakekit.MB),
//	    intakekit.WithHooks(intakekit.Hooks{
//	        OnProgress: func(p int) { fmt.Printf("\r%d%%", p) },
//	    }),
//	)
//	defer session.Close()
//
//	file, err := intakekit.FileFromPath("photo.jpg")
//	if err != nil {
//	    return err
//	}
//	outcome, err := session.Select(ctx, file)
//
// # Timers
//
// Progress ticks and banner dismissal go through a [Scheduler]. The default
// uses wall-clock timers; [ManualScheduler] runs on a virtual clock for
// tests and instant replays.
//
// # Previews
//
// [Previews] hands out [PreviewHandle] values for image files, each
// resolvable by a blob URL until released. [WithPreview] scopes a handle to
// a function call.
//
// # Configuration
//
// [GetConfig] loads settings from BEAVER_INTAKE_* environment variables;
// [LoadPolicyFile] overrides the policy from YAML.
package intakekit
