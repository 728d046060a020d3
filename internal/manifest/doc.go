// Package manifest loads and validates application manifests.
//
// An application is described by an application.yaml file in its directory:
//
//	app:
//	  name: java-ide
//	  version: 1.2.0
//	  org: acme
//	  license: EPL-2.0
//	  title: Java IDE
//	  base: debian
//	parameters:
//	  java:
//	    jdk: 17
//	build:
//	  registry: registry.example.com
//	  arguments:
//	    HTTP_PROXY: http://proxy:3128
//	modules:
//	  - base-tools
//	  - java
//
// The shape is enforced by an embedded CUE schema (application.cue). Unknown
// keys are rejected and every violation is reported, not just the first.
package manifest
