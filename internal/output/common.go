package output

// Source is column 2 of every feature iseq writes.
const Source = "iseq"

// TSVHeader is the canonical header row for the tsv format.
// Keep this as the single source of truth; all writers should use it.
const TSVHeader = "id\tsequence_id\tstart\tend\tlength\tprofile_name\tprofile_acc\twindow\tepsilon\tloglik\tsource_file"
