// Package nodeservice runs an HTTP service from an assembled configuration.
//
// A Service moves through Created, Bootstrapped and Running exactly once:
//
//	cfg, err := configuration.Assemble()
//	svc := nodeservice.New(cfg)
//	runner, err := svc.Setup(nodeservice.SetupOptions{Routes: routes})
//	err = runner.Run(ctx, nodeservice.RunOptions{ReleaseResources: closeDB})
//
// Run blocks until a configured signal, a call to Fail or cancellation of
// ctx. It then drains open connections and calls ReleaseResources. Signal and
// Fail shutdowns end the process unless WithoutExit was given; a cancelled
// ctx makes Run return instead.
package nodeservice
