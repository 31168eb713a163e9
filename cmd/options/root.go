package options

import (
	"fmt"
	"github.com/Driw/streamio/cmd/util"
	"github.com/Driw/streamio/lib/builder"
	"github.com/Driw/streamio/lib/compress"
	"github.com/Driw/streamio/lib/options"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"os"
)

var (
	// OptionCommands represents the option file command group
	OptionCommands = &cobra.Command{
		Use:   "options",
		Short: "Write, dump and export option record files",
	}

	writeCmd = &cobra.Command{
		Use:   "write [file] [name:type=value]...",
		Short: "Writes option records to a file through a memory mapping",
		Long:  `Writes option records to a file through a memory mapping. Records are taken from a JSONC definition file (--from) followed by the name:type=value arguments.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := util.BindCommandFlags(cmd); err != nil {
				return err
			}

			var recs []options.Record
			if from := viper.GetString("from"); from != "" {
				defs, err := options.ReadDefinitions(from)
				if err != nil {
					return err
				}
				recs = append(recs, defs...)
			}
			parsed, err := util.ParseRecords(args[1:])
			if err != nil {
				return err
			}
			recs = append(recs, parsed...)
			if len(recs) == 0 {
				return fmt.Errorf("no records given, use --from or name:type=value arguments")
			}

			src := builder.FromPath(args[0]).
				WithSize(viper.GetInt64("size")).
				WithIncrement(viper.GetInt64("increment")).
				WithInvert(viper.GetBool("invert"))
			if err := WriteRecords(src, recs); err != nil {
				return err
			}
			fmt.Printf("wrote %d records (%d bytes) to %s\n", len(recs), options.Size(recs...), args[0])
			return nil
		},
	}

	dumpCmd = &cobra.Command{
		Use:   "dump [file]",
		Short: "Prints the option records of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := util.BindCommandFlags(cmd); err != nil {
				return err
			}
			recs, err := ReadRecords(builder.FromPath(args[0]).WithInvert(viper.GetBool("invert")))
			if err != nil {
				return err
			}
			return options.Export(os.Stdout, viper.GetString("format"), recs)
		},
	}

	exportCmd = &cobra.Command{
		Use:   "export [file] [out]",
		Short: "Exports the option records of a file as json, yaml or cbor, optionally compressed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := util.BindCommandFlags(cmd); err != nil {
				return err
			}
			alg, err := compress.Parse(viper.GetString("compress"))
			if err != nil {
				return err
			}
			recs, err := ReadRecords(builder.FromPath(args[0]).WithInvert(viper.GetBool("invert")))
			if err != nil {
				return err
			}
			if err := ExportRecords(args[1], viper.GetString("format"), alg, recs); err != nil {
				return err
			}
			util.Logger.Infof("exported %d records to %s (%s, %s)", len(recs), args[1], viper.GetString("format"), alg)
			return nil
		},
	}
)

func init() {
	key := "from"
	writeCmd.Flags().String(key, "", util.WrapString("JSONC file with an array of {name, type, value} definitions"))
	key = "size"
	writeCmd.Flags().Int64(key, 0, util.WrapString("Initial mapping size in bytes, 0 selects the default"))
	key = "increment"
	writeCmd.Flags().Int64(key, 0, util.WrapString("Bytes the mapping grows by when full, 0 selects the default"))

	key = "format"
	dumpCmd.Flags().String(key, "text", util.WrapString("Output format (text, json, yaml, cbor)"))
	exportCmd.Flags().String(key, "json", util.WrapString("Output format (text, json, yaml, cbor)"))
	key = "compress"
	exportCmd.Flags().String(key, "none", util.WrapString("Compression of the exported file (none, deflate, zstd, lz4, snappy)"))

	OptionCommands.AddCommand(writeCmd)
	OptionCommands.AddCommand(dumpCmd)
	OptionCommands.AddCommand(exportCmd)
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// WriteRecords writes recs to the output opened from src and closes it
func WriteRecords(src builder.Source, recs []options.Record) error {
	out, err := builder.Output(src)
	if err != nil {
		return err
	}
	if err := options.NewWriter(out).PutAll(recs); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// ReadRecords reads every record of the input opened from src
func ReadRecords(src builder.Source) ([]options.Record, error) {
	in, err := builder.Input(src)
	if err != nil {
		return nil, err
	}
	defer in.Close()
	return options.NewReader(in).ReadAll()
}

// ExportRecords encodes recs into the file at path, compressed with alg
func ExportRecords(path, format string, alg compress.Algorithm, recs []options.Record) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	w, err := compress.NewWriter(file, alg)
	if err != nil {
		_ = file.Close()
		return err
	}
	if err := options.Export(w, format, recs); err != nil {
		_ = w.Close()
		_ = file.Close()
		return err
	}
	if err := w.Close(); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
