// Package config provides the process configuration of geonetwork-pnf.
//
// Settings are read by viper from $HOME/.geonetwork-pnf/config.yaml, which is
// written with the defaults on first start, or from the file given with
// --config. Command line flags bound by the cli package take precedence over
// the file.
//
// This is distinct from the data directory lookup done by the datadir
// package: viper decides where the webapp lives and which node this process
// is, datadir then decides where that node keeps its state.
package config
