// Package docker drives image builds through the Docker Engine API.
//
// The Client type wraps the Docker SDK: it streams a build, relays the build
// log and captures the resulting image ID, and applies additional tags. The
// Driver type combines both into a complete build run for an application.
//
// # Interface Abstraction
//
// The DockerAPI interface abstracts the Docker SDK, enabling mock injection
// for testing. Use NewClientWithAPI for test scenarios.
//
// # Example
//
//	client, err := docker.NewClient(docker.ClientOptions{})
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	driver := docker.NewDriver(client, os.Stdout, logger)
//	result, err := driver.Run(ctx, docker.Plan{App: app, ContextDir: dir, Latest: true})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.ImageID, result.Tags)
package docker
