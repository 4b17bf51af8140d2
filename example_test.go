package intakekit_test

import (
	"context"
	"fmt"
	"time"

	"github.com/gobeaver/intakekit"
)

func ExampleValidate() {
	limit := 50 * intakekit.MB
	images := []string{"image/"}

	photo := intakekit.NewFile("feast.jpg", 2*intakekit.MB, "image/jpeg")
	huge := intakekit.NewFile("feast.jpg", 60*intakekit.MB, "image/jpeg")
	menu := intakekit.NewFile("menu.pdf", intakekit.KB, "application/pdf")

	fmt.Println(intakekit.Validate(photo, limit, images))
	fmt.Println(intakekit.Validate(huge, limit, images))
	fmt.Println(intakekit.Validate(menu, limit, images))
	// Output:
	// accepted
	// rejected(too_large)
	// rejected(wrong_type)
}

func ExamplePolicy_Message() {
	policy := intakekit.ImagePolicy(10 * intakekit.MB)
	huge := intakekit.NewFile("feast.jpg", 11*intakekit.MB, "image/jpeg")

	fmt.Println(policy.Message(policy.Validate(huge)))
	// Output: Image too large. Maximum size is 10.00 MB
}

func ExampleFormatSize() {
	fmt.Println(intakekit.FormatSize(0))
	fmt.Println(intakekit.FormatSize(1536))
	fmt.Println(intakekit.FormatSize(10 * intakekit.MB))
	// Output:
	// 0 Bytes
	// 1.50 KB
	// 10.00 MB
}

func ExampleIconFor() {
	fmt.Println(intakekit.IconFor("image/png"))
	fmt.Println(intakekit.IconFor("application/pdf"))
	fmt.Println(intakekit.IconFor("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"))
	fmt.Println(intakekit.IconFor(""))
	// Output:
	// 📸
	// 📕
	// 📊
	// 🍽️
}

func ExampleSession() {
	sched := intakekit.NewManualScheduler()
	session := intakekit.NewSession(intakekit.ImagePolicy(10*intakekit.MB),
		intakekit.WithScheduler(sched),
		intakekit.WithHooks(intakekit.Hooks{
			OnComplete: func(f intakekit.SelectedFile) { fmt.Println("uploaded", f.Name) },
		}),
	)
	defer session.Close()

	file := intakekit.NewFile("cake.png", 2*intakekit.KB, "image/png")
	outcome, err := session.Select(context.Background(), file)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println(outcome)

	sched.Advance(500 * time.Millisecond)
	fmt.Println(session.Progress())

	sched.Advance(500 * time.Millisecond)
	notice, _ := session.Notice()
	fmt.Println(notice.Message)
	// Output:
	// accepted
	// 50
	// uploaded cake.png
	// cake.png uploaded successfully
}
