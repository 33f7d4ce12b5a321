package presets

import "github.com/spacemeshos/go-txrecon/config"

func init() {
	register("standard", standard())
	register("tight", tight())
	register("checked", checked())
}

// standard matches the defaults: a 1MiB table without checksums.
func standard() config.Config {
	return config.DefaultConfig()
}

// tight shrinks the table to find the point where decoding starts failing.
func tight() config.Config {
	conf := config.DefaultConfig()
	conf.Sketch.Mem = 64 << 10
	return conf
}

// checked adds a 4 byte checksum to every bucket and runs trials in parallel.
func checked() config.Config {
	conf := config.DefaultConfig()
	conf.Sketch.Checksum = 4
	conf.Workers = 4
	return conf
}
