package wizard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// Run executes the interactive wizard and returns the user's answers.
func Run(detection DetectionResult) (*Answers, error) {
	answers := &Answers{
		Namespace: "default",
		Replicas:  "1",
		Port:      "8080:80",
	}

	var hints []string
	if len(detection.ComposeFiles) > 0 {
		hints = append(hints, fmt.Sprintf("Compose files found: %s", strings.Join(detection.ComposeFiles, ", ")))
	}
	if detection.Kubeconfig != "" {
		hints = append(hints, fmt.Sprintf("Kubeconfig found: %s", detection.Kubeconfig))
	}

	desc := "Describe the first app of your stack. You can add more apps to the file afterwards."
	if len(hints) > 0 {
		desc += "\n\nAuto-detected:\n  " + strings.Join(hints, "\n  ")
	}

	appForm := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("App name").
				Description(desc).
				Placeholder("whoami").
				Value(&answers.AppName),
			huh.NewInput().
				Title("Container image").
				Placeholder("traefik/whoami:latest").
				Value(&answers.Image),
			huh.NewInput().
				Title("Port mapping (published:target)").
				Value(&answers.Port),
			huh.NewInput().
				Title("Replicas").
				Value(&answers.Replicas),
		),
	)
	if err := appForm.Run(); err != nil {
		return nil, err
	}

	var optionGroups []*huh.Group
	optionGroups = append(optionGroups, huh.NewGroup(
		huh.NewConfirm().
			Title("Expose the app through an Ingress?").
			Value(&answers.Expose),
		huh.NewInput().
			Title("Target Kubernetes namespace").
			Value(&answers.Namespace),
		huh.NewConfirm().
			Title("Add a persistent volume?").
			Value(&answers.WithVolume),
	))

	form := huh.NewForm(optionGroups...)
	if err := form.Run(); err != nil {
		return nil, err
	}

	if answers.Expose {
		exposeForm := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Ingress host").
					Placeholder("example.com").
					Value(&answers.ExposeHost),
			),
		)
		if err := exposeForm.Run(); err != nil {
			return nil, err
		}
	}

	if answers.WithVolume {
		volumeForm := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Volume name").
					Placeholder("data").
					Value(&answers.VolumeName),
				huh.NewInput().
					Title("Mount path").
					Placeholder("/data").
					Value(&answers.VolumeMount),
				huh.NewInput().
					Title("Volume size").
					Placeholder("1Gi").
					Value(&answers.VolumeSize),
			),
		)
		if err := volumeForm.Run(); err != nil {
			return nil, err
		}
	}

	return answers, nil
}
